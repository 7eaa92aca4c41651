package dedup

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "seen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreAdd(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	fresh, err := store.Add(ctx, "https://example.com/a?a=1")
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = store.Add(ctx, "https://example.com/a?a=1")
	require.NoError(t, err)
	assert.False(t, fresh)

	hits, err := store.Hits(ctx, "https://example.com/a?a=1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits)

	hits, err = store.Hits(ctx, "https://example.com/never-seen")
	require.NoError(t, err)
	assert.Equal(t, int64(0), hits)
}

func TestStoreCountAndAll(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, u := range []string{
		"https://example.com/b",
		"https://example.com/a",
		"https://example.com/b",
	} {
		_, err := store.Add(ctx, u)
		require.NoError(t, err)
	}

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, all)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Add(ctx, "https://example.com/a")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	fresh, err := store.Add(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.False(t, fresh)
}
