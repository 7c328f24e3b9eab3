// Package sqlite provides a SQLite-backed session snapshot store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
	"github.com/louisbranch/highnoon.cards/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/highnoon.cards/internal/storage"
	"github.com/louisbranch/highnoon.cards/internal/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Store persists session snapshot documents in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite snapshot store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save writes or fully replaces the document stored under name.
func (s *Store) Save(ctx context.Context, name string, statusGame bool, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("session name is required")
	}
	status := 0
	if statusGame {
		status = 1
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (name, status_game, document, saved_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   status_game = excluded.status_game,
		   document = excluded.document,
		   saved_at = excluded.saved_at`,
		name,
		status,
		document,
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", name, err)
	}
	return nil
}

// Load returns the document stored under name.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var document []byte
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT document FROM sessions WHERE name = ?`,
		name,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WithMetadata(apperrors.CodeSnapshotNotFound,
			"no stored session", map[string]string{"session": name})
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", name, err)
	}
	return document, nil
}

// List enumerates stored sessions, oldest name first.
func (s *Store) List(ctx context.Context) ([]storage.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT name, status_game, saved_at FROM sessions ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var infos []storage.Info
	for rows.Next() {
		var (
			info    storage.Info
			status  int
			savedAt int64
		)
		if err := rows.Scan(&info.Name, &status, &savedAt); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		info.StatusGame = status != 0
		info.SavedAt = fromMillis(savedAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session rows: %w", err)
	}
	return infos, nil
}

// Delete removes the document stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sessions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", name, err)
	}
	if affected == 0 {
		return apperrors.WithMetadata(apperrors.CodeSnapshotNotFound,
			"no stored session", map[string]string{"session": name})
	}
	return nil
}
