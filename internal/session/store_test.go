package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func TestStore_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "rodeo", "discogs-token")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Contains(t, created.ID, "ses-")

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rodeo", got.Username)
	assert.Equal(t, "discogs-token", got.Token)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "ses-missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "rodeo", "discogs-token")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	// Deleting again is a no-op, not an error.
	assert.NoError(t, store.Delete(ctx, created.ID))
}

func TestStore_Touch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "rodeo", "discogs-token")
	require.NoError(t, err)

	store.Touch(ctx, created.ID)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.LastUsedAt.Before(created.LastUsedAt))
}

func TestStore_Create_CancelledContext(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Create(ctx, "rodeo", "discogs-token")
	assert.ErrorIs(t, err, context.Canceled)
}
