package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "cache.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_MigrationsRecordedOnce(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.WriteSnapshot(context.Background(), []byte(`{"a":1}`)))
	require.NoError(t, store.Close())

	// Reopening must not re-run migrations or lose data
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	raw, err := store.ReadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(raw))
}

func TestStore_SnapshotSlot(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.ReadSnapshot(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.WriteSnapshot(ctx, []byte(`{"about":{}}`)))
	require.NoError(t, store.WriteSnapshot(ctx, []byte(`{"about":{"intro":"x"}}`)))

	raw, err := store.ReadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"about":{"intro":"x"}}`, string(raw))

	require.NoError(t, store.ClearSnapshot(ctx))
	_, err = store.ReadSnapshot(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.ClearSnapshot(ctx), "clearing an empty slot is fine")
}

func TestStore_BytesPreserved(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	raw := []byte("{ \"hero\" : \"café\" ,\n \"n\": 1.50 }")
	require.NoError(t, store.WriteSnapshot(ctx, raw))

	got, err := store.ReadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestStore_CredentialSlotIndependent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.ReadCredential(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.WriteCredential(ctx, "tok"))
	require.NoError(t, store.WriteSnapshot(ctx, []byte(`{}`)))
	require.NoError(t, store.ClearSnapshot(ctx))

	token, err := store.ReadCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.ClearCredential(ctx))
	_, err = store.ReadCredential(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ClosedReportsStorageError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.ReadSnapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)

	err = store.WriteSnapshot(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrStorage)
}
