// Package rediscache provides a Redis-backed content cache, for deployments
// where several editors share one cache.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
)

// DefaultPrefix namespaces the slot keys.
const DefaultPrefix = "sitecms:"

const (
	slotContent = "content"
	slotToken   = "session_token"
)

var _ driven.ContentCache = (*Store)(nil)

// Store implements driven.ContentCache using Redis string keys.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore connects to redisURL and verifies the connection.
func NewStore(ctx context.Context, redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewStoreWithClient(client, DefaultPrefix), nil
}

// NewStoreWithClient creates a store from an existing client.
func NewStoreWithClient(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(slot string) string {
	return s.prefix + slot
}

// ReadSnapshot returns the cached snapshot bytes.
func (s *Store) ReadSnapshot(ctx context.Context) ([]byte, error) {
	return s.get(ctx, slotContent)
}

// WriteSnapshot replaces the cached snapshot.
func (s *Store) WriteSnapshot(ctx context.Context, raw []byte) error {
	return s.set(ctx, slotContent, raw)
}

// ClearSnapshot removes the cached snapshot.
func (s *Store) ClearSnapshot(ctx context.Context) error {
	return s.del(ctx, slotContent)
}

// ReadCredential returns the stored bearer token.
func (s *Store) ReadCredential(ctx context.Context) (string, error) {
	value, err := s.get(ctx, slotToken)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// WriteCredential stores the bearer token.
func (s *Store) WriteCredential(ctx context.Context, token string) error {
	return s.set(ctx, slotToken, []byte(token))
}

// ClearCredential removes the bearer token.
func (s *Store) ClearCredential(ctx context.Context) error {
	return s.del(ctx, slotToken)
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) get(ctx context.Context, slot string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "read " + slot, Err: err}
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, slot string, value []byte) error {
	if err := s.client.Set(ctx, s.key(slot), value, 0).Err(); err != nil {
		return &domain.StorageError{Op: "write " + slot, Err: err}
	}
	return nil
}

func (s *Store) del(ctx context.Context, slot string) error {
	if err := s.client.Del(ctx, s.key(slot)).Err(); err != nil {
		return &domain.StorageError{Op: "clear " + slot, Err: err}
	}
	return nil
}
