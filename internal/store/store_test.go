package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/supergraph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStores(t *testing.T) map[string]Store {
	t.Helper()

	stores := make(map[string]Store)

	for _, backend := range []string{BackendBolt, BackendSQLite} {
		st, err := Open(backend, filepath.Join(t.TempDir(), backend))
		require.NoError(t, err, "open %s", backend)

		t.Cleanup(func() {
			if err := st.Close(); err != nil {
				t.Logf("failed to close %s store: %v", backend, err)
			}
		})

		stores[backend] = st
	}

	return stores
}

func TestStore_Ping(t *testing.T) {
	for name, st := range setupTestStores(t) {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, st.Ping())
		})
	}
}

func TestStore_SaveAndGetProfile(t *testing.T) {
	for name, st := range setupTestStores(t) {
		t.Run(name, func(t *testing.T) {
			p := &model.Profile{Name: "default", APIKey: "user:abc123", Endpoint: "https://registry.example.com/graphql"}
			require.NoError(t, st.SaveProfile(p))
			assert.False(t, p.CreatedAt.IsZero(), "SaveProfile should stamp CreatedAt")

			got, err := st.GetProfile("default")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "user:abc123", got.APIKey)
			assert.Equal(t, "https://registry.example.com/graphql", got.Endpoint)
			assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

			missing, err := st.GetProfile("nope")
			require.NoError(t, err)
			assert.Nil(t, missing)

			p.APIKey = "user:rotated"
			require.NoError(t, st.SaveProfile(p))

			got, err = st.GetProfile("default")
			require.NoError(t, err)
			assert.Equal(t, "user:rotated", got.APIKey)
		})
	}
}

func TestStore_SaveProfileValidation(t *testing.T) {
	for name, st := range setupTestStores(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, st.SaveProfile(nil))
			assert.Error(t, st.SaveProfile(&model.Profile{APIKey: "k"}))
		})
	}
}

func TestStore_ActiveProfile(t *testing.T) {
	for name, st := range setupTestStores(t) {
		t.Run(name, func(t *testing.T) {
			active, err := st.GetActiveProfile()
			require.NoError(t, err)
			assert.Nil(t, active)

			require.NoError(t, st.SaveProfile(&model.Profile{Name: "prod", APIKey: "k1", Active: true}))
			require.NoError(t, st.SaveProfile(&model.Profile{Name: "staging", APIKey: "k2"}))

			active, err = st.GetActiveProfile()
			require.NoError(t, err)
			require.NotNil(t, active)
			assert.Equal(t, "prod", active.Name)

			require.NoError(t, st.SetActiveProfile("staging"))

			active, err = st.GetActiveProfile()
			require.NoError(t, err)
			assert.Equal(t, "staging", active.Name)

			prod, err := st.GetProfile("prod")
			require.NoError(t, err)
			assert.False(t, prod.Active, "only one profile may be active")

			err = st.SetActiveProfile("missing")
			assert.True(t, errors.Is(err, ErrProfileNotFound))

			// Saving an active profile takes the flag from the others
			require.NoError(t, st.SaveProfile(&model.Profile{Name: "dev", APIKey: "k3", Active: true}))

			profiles, err := st.ListProfiles()
			require.NoError(t, err)

			activeCount := 0
			for _, p := range profiles {
				if p.Active {
					activeCount++
				}
			}

			assert.Equal(t, 1, activeCount)
		})
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	for name, st := range setupTestStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"zeta", "alpha", "mid"} {
				require.NoError(t, st.SaveProfile(&model.Profile{Name: n, APIKey: "key-" + n}))
			}

			profiles, err := st.ListProfiles()
			require.NoError(t, err)
			require.Len(t, profiles, 3)
			assert.Equal(t, "alpha", profiles[0].Name)
			assert.Equal(t, "mid", profiles[1].Name)
			assert.Equal(t, "zeta", profiles[2].Name)

			require.NoError(t, st.DeleteProfile("mid"))
			assert.True(t, errors.Is(st.DeleteProfile("mid"), ErrProfileNotFound))

			profiles, err = st.ListProfiles()
			require.NoError(t, err)
			assert.Len(t, profiles, 2)
		})
	}
}

func TestStore_TouchProfile(t *testing.T) {
	for name, st := range setupTestStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.SaveProfile(&model.Profile{Name: "default", APIKey: "k"}))

			at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, st.TouchProfile("default", at))

			got, err := st.GetProfile("default")
			require.NoError(t, err)
			assert.True(t, at.Equal(got.LastUsedAt))

			assert.True(t, errors.Is(st.TouchProfile("missing", at), ErrProfileNotFound))
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("postgres", t.TempDir())
	assert.Error(t, err)
}

func TestOpen_FilePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	st, err := Open(BackendSQLite, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	info, err := os.Stat(filepath.Join(dir, "supergraph.db"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMigrator_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	first, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	version, err := NewMigrator(second.db).CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}
