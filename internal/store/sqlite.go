package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/inovacc/supergraph/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLite implements Store on a SQLite database file.
type SQLite struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLite opens the database at path and applies pending migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := NewMigrator(db).MigrateUp(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if err := os.Chmod(path, 0o600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()

		return nil, fmt.Errorf("restricting database permissions: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Ping() error {
	return s.db.Ping()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

const profileColumns = `name, api_key, endpoint, active, created_at, last_used_at`

// SaveProfile creates or replaces a profile
func (s *SQLite) SaveProfile(profile *model.Profile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if profile.Active {
		if _, err := tx.Exec(`UPDATE profiles SET active = 0 WHERE name <> ?`, profile.Name); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO profiles (`+profileColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			api_key = excluded.api_key,
			endpoint = excluded.endpoint,
			active = excluded.active,
			created_at = excluded.created_at,
			last_used_at = excluded.last_used_at`,
		profile.Name, profile.APIKey, profile.Endpoint, boolToInt(profile.Active),
		toUnixNano(profile.CreatedAt), toUnixNano(profile.LastUsedAt),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// GetProfile retrieves a profile by name
func (s *SQLite) GetProfile(name string) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	return p, err
}

// GetActiveProfile retrieves the active profile
func (s *SQLite) GetActiveProfile() (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT ` + profileColumns + ` FROM profiles WHERE active = 1 LIMIT 1`)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	return p, err
}

// SetActiveProfile marks name as the active profile
func (s *SQLite) SetActiveProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE profiles SET active = 1 WHERE name = ?`, name)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}

	if _, err := tx.Exec(`UPDATE profiles SET active = 0 WHERE name <> ?`, name); err != nil {
		return err
	}

	return tx.Commit()
}

// ListProfiles retrieves all profiles ordered by name
func (s *SQLite) ListProfiles() ([]model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var profiles []model.Profile

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}

		profiles = append(profiles, *p)
	}

	return profiles, rows.Err()
}

// DeleteProfile removes a profile
func (s *SQLite) DeleteProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// TouchProfile records that a profile was used at the given time
func (s *SQLite) TouchProfile(name string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE profiles SET last_used_at = ? WHERE name = ?`, toUnixNano(at), name)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*model.Profile, error) {
	var (
		p                 model.Profile
		active            int
		created, lastUsed int64
	)

	if err := row.Scan(&p.Name, &p.APIKey, &p.Endpoint, &active, &created, &lastUsed); err != nil {
		return nil, err
	}

	p.Active = active != 0
	p.CreatedAt = fromUnixNano(created)
	p.LastUsedAt = fromUnixNano(lastUsed)

	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

func toUnixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}

	return time.Unix(0, n)
}
