package memory

import (
	"context"
	"sync"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
)

// Ensure ContentCache implements the interface.
var _ driven.ContentCache = (*ContentCache)(nil)

// ContentCache is an in-memory implementation of driven.ContentCache.
// Nothing survives the process; useful for tests and one-shot commands.
type ContentCache struct {
	mu       sync.RWMutex
	snapshot []byte
	token    *string
}

// NewContentCache creates an empty in-memory cache.
func NewContentCache() *ContentCache {
	return &ContentCache{}
}

// ReadSnapshot returns a copy of the cached snapshot.
func (c *ContentCache) ReadSnapshot(_ context.Context) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), c.snapshot...), nil
}

// WriteSnapshot replaces the cached snapshot.
func (c *ContentCache) WriteSnapshot(_ context.Context, raw []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = append(make([]byte, 0, len(raw)), raw...)
	return nil
}

// ClearSnapshot removes the cached snapshot.
func (c *ContentCache) ClearSnapshot(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	return nil
}

// ReadCredential returns the stored token.
func (c *ContentCache) ReadCredential(_ context.Context) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return "", domain.ErrNotFound
	}
	return *c.token, nil
}

// WriteCredential stores the token.
func (c *ContentCache) WriteCredential(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = &token
	return nil
}

// ClearCredential removes the token.
func (c *ContentCache) ClearCredential(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
	return nil
}

// Close is a no-op.
func (c *ContentCache) Close() error {
	return nil
}
