// Package storage persists the user-scoped dashboard preferences. The only
// preference today is the display currency; the bill collection itself is
// never stored here, it always comes from the bills backend.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type PreferenceStore struct {
	db *sql.DB
}

func NewPreferenceStore(dbPath string) (*PreferenceStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PreferenceStore{db: db}, nil
}

func (s *PreferenceStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetCurrency returns the stored display currency for a user. The second
// return value is false when no preference has been stored yet; the caller
// falls back to the configured default in that case.
func (s *PreferenceStore) GetCurrency(ctx context.Context, userID string) (string, bool, error) {
	var code string
	err := s.db.QueryRowContext(ctx,
		`SELECT currency FROM preferences WHERE user_id = ?`, userID).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get currency: %w", err)
	}
	return code, true, nil
}

// SetCurrency stores the display currency for a user, replacing any
// previous value.
func (s *PreferenceStore) SetCurrency(ctx context.Context, userID, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return fmt.Errorf("invalid currency code %q", code)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (user_id, currency, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET currency = excluded.currency, updated_at = excluded.updated_at`,
		userID, code, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set currency: %w", err)
	}

	slog.InfoContext(ctx, "Currency preference saved",
		"user_id", userID,
		"currency", code)
	return nil
}
