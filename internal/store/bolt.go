package store

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/inovacc/supergraph/internal/model"
	"go.etcd.io/bbolt"
)

const (
	boltBucketProfiles = "profiles" // key: name -> Profile JSON
)

type Bolt struct {
	storage *bbolt.DB
}

// NewBolt creates or opens a Bolt database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketProfiles))

		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

// SaveProfile creates or replaces a profile
func (b *Bolt) SaveProfile(profile *model.Profile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))

		if profile.Active {
			if err := clearActive(bucket, profile.Name); err != nil {
				return err
			}
		}

		data, err := json.Marshal(profile)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(profile.Name), data)
	})
}

// GetProfile retrieves a profile by name
func (b *Bolt) GetProfile(name string) (*model.Profile, error) {
	var profile *model.Profile

	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketProfiles)).Get([]byte(name))
		if v == nil {
			return nil
		}

		var p model.Profile
		if err := json.Unmarshal(v, &p); err != nil {
			return err
		}

		profile = &p

		return nil
	})

	return profile, err
}

// GetActiveProfile retrieves the active profile
func (b *Bolt) GetActiveProfile() (*model.Profile, error) {
	profiles, err := b.ListProfiles()
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		if profiles[i].Active {
			return &profiles[i], nil
		}
	}

	return nil, nil
}

// SetActiveProfile marks name as the active profile and clears the flag on
// every other profile
func (b *Bolt) SetActiveProfile(name string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))

		v := bucket.Get([]byte(name))
		if v == nil {
			return ErrProfileNotFound
		}

		if err := clearActive(bucket, name); err != nil {
			return err
		}

		var p model.Profile
		if err := json.Unmarshal(v, &p); err != nil {
			return err
		}

		p.Active = true

		data, err := json.Marshal(&p)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(name), data)
	})
}

// ListProfiles retrieves all profiles ordered by name
func (b *Bolt) ListProfiles() ([]model.Profile, error) {
	var profiles []model.Profile

	err := b.storage.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketProfiles)).ForEach(func(k, v []byte) error {
			var p model.Profile
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}

			profiles = append(profiles, p)

			return nil
		})
	})

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, err
}

// DeleteProfile removes a profile
func (b *Bolt) DeleteProfile(name string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))
		if bucket.Get([]byte(name)) == nil {
			return ErrProfileNotFound
		}

		return bucket.Delete([]byte(name))
	})
}

// TouchProfile records that a profile was used at the given time
func (b *Bolt) TouchProfile(name string, at time.Time) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))

		v := bucket.Get([]byte(name))
		if v == nil {
			return ErrProfileNotFound
		}

		var p model.Profile
		if err := json.Unmarshal(v, &p); err != nil {
			return err
		}

		p.LastUsedAt = at

		data, err := json.Marshal(&p)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(name), data)
	})
}

// clearActive unsets the active flag on every profile except keep. Updates
// are collected first because a bucket must not be modified inside ForEach.
func clearActive(bucket *bbolt.Bucket, keep string) error {
	updates := make(map[string][]byte)

	if err := bucket.ForEach(func(k, v []byte) error {
		if string(k) == keep {
			return nil
		}

		var p model.Profile
		if err := json.Unmarshal(v, &p); err != nil {
			return err
		}

		if !p.Active {
			return nil
		}

		p.Active = false

		data, err := json.Marshal(&p)
		if err != nil {
			return err
		}

		updates[string(k)] = data

		return nil
	}); err != nil {
		return err
	}

	for k, data := range updates {
		if err := bucket.Put([]byte(k), data); err != nil {
			return err
		}
	}

	return nil
}
