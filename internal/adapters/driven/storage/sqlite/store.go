package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
)

// FileName is the database file inside the data directory.
const FileName = "cache.db"

const (
	slotContent = "content"
	slotToken   = "session_token"
)

var (
	_ driven.ContentCache = (*Store)(nil)
	_ driven.CachePather  = (*Store)(nil)
)

// Store keeps the snapshot and session token in cache_slots. Scheduler state
// lives in the same file; see SchedulerStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating when needed) dataDir/cache.db and applies pending
// migrations. An empty dataDir means ~/.sitecms/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate home: %w", err)
		}
		dataDir = filepath.Join(home, ".sitecms", "data")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create %s: %w", dataDir, err)
	}

	path := filepath.Join(dataDir, FileName)
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Path is the database file the watcher follows.
func (s *Store) Path() string { return s.path }

// SchedulerStore shares this database.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

func (s *Store) ReadSnapshot(ctx context.Context) ([]byte, error) {
	return s.get(ctx, slotContent)
}

func (s *Store) WriteSnapshot(ctx context.Context, raw []byte) error {
	return s.put(ctx, slotContent, raw)
}

func (s *Store) ClearSnapshot(ctx context.Context) error {
	return s.drop(ctx, slotContent)
}

func (s *Store) ReadCredential(ctx context.Context) (string, error) {
	v, err := s.get(ctx, slotToken)
	return string(v), err
}

func (s *Store) WriteCredential(ctx context.Context, token string) error {
	return s.put(ctx, slotToken, []byte(token))
}

func (s *Store) ClearCredential(ctx context.Context) error {
	return s.drop(ctx, slotToken)
}

// get returns domain.ErrNotFound for a missing slot.
func (s *Store) get(ctx context.Context, slot string) ([]byte, error) {
	var v []byte
	switch err := s.db.QueryRowContext(ctx, `SELECT value FROM cache_slots WHERE name = ?`, slot).Scan(&v); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, &domain.StorageError{Op: "read " + slot, Err: err}
	}
	return v, nil
}

func (s *Store) put(ctx context.Context, slot string, v []byte) error {
	if v == nil {
		v = []byte{}
	}
	const upsert = `INSERT INTO cache_slots (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, upsert, slot, v, time.Now().UTC().Format(timeFormat)); err != nil {
		return &domain.StorageError{Op: "write " + slot, Err: err}
	}
	return nil
}

func (s *Store) drop(ctx context.Context, slot string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_slots WHERE name = ?`, slot); err != nil {
		return &domain.StorageError{Op: "clear " + slot, Err: err}
	}
	return nil
}
