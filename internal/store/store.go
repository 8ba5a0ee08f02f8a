package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/supergraph/internal/model"
)

// Backend names accepted by Open
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// ErrProfileNotFound is returned by operations that need an existing profile
var ErrProfileNotFound = errors.New("profile not found")

// Store defines the profile operations used by the app.
type Store interface {
	Ping() error
	Close() error

	SaveProfile(profile *model.Profile) error

	// GetProfile returns nil, nil when no profile has that name
	GetProfile(name string) (*model.Profile, error)

	// GetActiveProfile returns nil, nil when no profile is active
	GetActiveProfile() (*model.Profile, error)
	SetActiveProfile(name string) error
	ListProfiles() ([]model.Profile, error)
	DeleteProfile(name string) error
	TouchProfile(name string, at time.Time) error
}

// Open opens the store for backend inside dir, creating dir if needed.
func Open(backend, dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	switch backend {
	case BackendBolt, "":
		return NewBolt(filepath.Join(dir, "supergraph.bolt"))
	case BackendSQLite:
		return NewSQLite(filepath.Join(dir, "supergraph.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected %q or %q)", backend, BackendBolt, BackendSQLite)
	}
}

func validateProfile(profile *model.Profile) error {
	if profile == nil {
		return errors.New("profile is required")
	}

	if profile.Name == "" {
		return errors.New("profile name is required")
	}

	return nil
}
