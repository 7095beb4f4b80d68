package driven

import "context"

// ContentCache is the durable local cache: one slot for the content
// snapshot and one for the session credential.
//
// Implementations perform no validation; the snapshot is opaque bytes.
// Failures are reported as *domain.StorageError.
type ContentCache interface {
	// ReadSnapshot returns the cached snapshot bytes.
	// Returns domain.ErrNotFound if nothing has been cached yet.
	ReadSnapshot(ctx context.Context) ([]byte, error)

	// WriteSnapshot replaces the cached snapshot.
	WriteSnapshot(ctx context.Context, raw []byte) error

	// ClearSnapshot removes the cached snapshot. Missing slots are not an error.
	ClearSnapshot(ctx context.Context) error

	// ReadCredential returns the stored bearer token.
	// Returns domain.ErrNotFound if no token is stored.
	ReadCredential(ctx context.Context) (string, error)

	// WriteCredential stores the bearer token.
	WriteCredential(ctx context.Context, token string) error

	// ClearCredential removes the bearer token. Missing slots are not an error.
	ClearCredential(ctx context.Context) error

	// Close releases the underlying storage.
	Close() error
}

// CachePather is implemented by caches that persist to a single local file.
type CachePather interface {
	// Path returns the file backing the cache.
	Path() string
}
