package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artizon/internal/storage"
)

func TestSQLiteStore_SetGetDelete(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)

	// Missing key
	_, ok, err := store.Get("access_token")
	require.NoError(t, err)
	assert.False(t, ok)

	// Write and read back
	require.NoError(t, store.Set("access_token", "abc"))
	value, ok, err := store.Get("access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	// Overwrite
	require.NoError(t, store.Set("access_token", "def"))
	value, _, _ = store.Get("access_token")
	assert.Equal(t, "def", value)

	// Delete, twice (second must not error)
	require.NoError(t, store.Delete("access_token"))
	_, ok, err = store.Get("access_token")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, store.Delete("access_token"))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	store, err := storage.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("cart", `[{"id":1}]`))

	reopened, err := storage.NewSQLiteStore(path)
	require.NoError(t, err)
	value, ok, err := reopened.Get("cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, value)
}

func TestMemoryStore(t *testing.T) {
	store := storage.NewMemoryStore()

	_, ok, err := store.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("cart", "[]"))
	value, ok, _ := store.Get("cart")
	assert.True(t, ok)
	assert.Equal(t, "[]", value)

	require.NoError(t, store.Delete("cart"))
	_, ok, _ = store.Get("cart")
	assert.False(t, ok)
}
