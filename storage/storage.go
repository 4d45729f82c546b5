// Package storage persists user preferences in a SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"svgcss/model"
)

const (
	dbFile   = "svgcss.db"
	themeKey = "theme"
)

// Store is a small key/value table of preferences.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates baseDir if needed and opens (or creates) the database in it.
func Open(ctx context.Context, baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(baseDir, dbFile)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	stmts := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		`CREATE TABLE IF NOT EXISTS preferences (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", s, err)
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}

// ThemeStore exposes the theme preference of a Store.
type ThemeStore struct {
	store *Store
}

func (s *Store) Theme() *ThemeStore {
	return &ThemeStore{store: s}
}

// LoadTheme returns the stored preference, or system when nothing usable is
// stored.
func (t *ThemeStore) LoadTheme(ctx context.Context) (model.ThemePreference, error) {
	v, ok, err := t.store.Get(ctx, themeKey)
	if err != nil || !ok {
		return model.ThemeSystem, err
	}
	pref, err := model.ParseTheme(v)
	if err != nil {
		return model.ThemeSystem, nil
	}
	return pref, nil
}

func (t *ThemeStore) SaveTheme(ctx context.Context, pref model.ThemePreference) error {
	return t.store.Set(ctx, themeKey, string(pref))
}
