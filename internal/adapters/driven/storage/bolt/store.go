package bolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
)

var (
	bucketSlots   = []byte("slots")
	bucketJobs    = []byte("jobs")
	bucketRuns    = []byte("runs")

	keyContent = []byte("content")
	keyToken   = []byte("session_token")
)

var (
	_ driven.ContentCache = (*Store)(nil)
	_ driven.CachePather  = (*Store)(nil)
)

// Store is the bbolt-backed content cache.
type Store struct {
	db   *bbolt.DB
	path string
}

// NewStore opens (or creates) cache.bolt in dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "cache.bolt")

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketSlots, bucketJobs, bucketRuns} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("creating bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SchedulerStore returns a scheduler store sharing this database.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{db: s.db}
}

// ReadSnapshot returns the cached snapshot bytes.
func (s *Store) ReadSnapshot(_ context.Context) ([]byte, error) {
	return s.get(keyContent)
}

// WriteSnapshot replaces the cached snapshot.
func (s *Store) WriteSnapshot(_ context.Context, raw []byte) error {
	return s.put(keyContent, raw)
}

// ClearSnapshot removes the cached snapshot.
func (s *Store) ClearSnapshot(_ context.Context) error {
	return s.delete(keyContent)
}

// ReadCredential returns the stored bearer token.
func (s *Store) ReadCredential(_ context.Context) (string, error) {
	value, err := s.get(keyToken)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// WriteCredential stores the bearer token.
func (s *Store) WriteCredential(_ context.Context, token string) error {
	return s.put(keyToken, []byte(token))
}

// ClearCredential removes the bearer token.
func (s *Store) ClearCredential(_ context.Context) error {
	return s.delete(keyToken)
}

func (s *Store) get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSlots).Get(key)
		if data == nil {
			return domain.ErrNotFound
		}
		// Values are only valid for the life of the transaction
		value = append([]byte{}, data...)
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "read " + string(key), Err: err}
	}
	return value, nil
}

func (s *Store) put(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSlots).Put(key, value)
	})
	if err != nil {
		return &domain.StorageError{Op: "write " + string(key), Err: err}
	}
	return nil
}

func (s *Store) delete(key []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSlots).Delete(key)
	})
	if err != nil {
		return &domain.StorageError{Op: "clear " + string(key), Err: err}
	}
	return nil
}
