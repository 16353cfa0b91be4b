package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskmind/go-task-client/tokenstore"
)

func TestStore_Memory(t *testing.T) {
	t.Run("set then get", func(t *testing.T) {
		store := tokenstore.New(nil)
		require.NoError(t, store.Set("tok-1"))
		require.Equal(t, "tok-1", store.Get())
	})

	t.Run("set replaces the previous token", func(t *testing.T) {
		store := tokenstore.New(nil)
		require.NoError(t, store.Set("tok-1"))
		require.NoError(t, store.Set("tok-2"))
		require.Equal(t, "tok-2", store.Get())
	})

	t.Run("clear removes the token", func(t *testing.T) {
		store := tokenstore.New(nil)
		require.NoError(t, store.Set("tok-1"))
		require.NoError(t, store.Clear())
		require.Empty(t, store.Get())
	})

	t.Run("empty store yields empty token", func(t *testing.T) {
		store := tokenstore.New(nil)
		require.Empty(t, store.Get())
	})
}

func TestStore_File(t *testing.T) {
	t.Run("token survives a new store on the same folder", func(t *testing.T) {
		folder := t.TempDir()

		storage, err := tokenstore.NewFileStorage(folder)
		require.NoError(t, err)
		store := tokenstore.New(storage)
		require.NoError(t, store.Set("persisted-token"))

		reopened, err := tokenstore.NewFileStorage(folder)
		require.NoError(t, err)
		require.Equal(t, "persisted-token", tokenstore.New(reopened).Get())
	})

	t.Run("token file uses the storage key and owner-only mode", func(t *testing.T) {
		folder := t.TempDir()
		storage, err := tokenstore.NewFileStorage(folder)
		require.NoError(t, err)
		require.NoError(t, tokenstore.New(storage).Set("tok"))

		info, err := os.Stat(filepath.Join(folder, tokenstore.StorageKey))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("clear removes the file", func(t *testing.T) {
		folder := t.TempDir()
		storage, err := tokenstore.NewFileStorage(folder)
		require.NoError(t, err)
		store := tokenstore.New(storage)

		require.NoError(t, store.Set("tok"))
		require.NoError(t, store.Clear())
		_, err = os.Stat(filepath.Join(folder, tokenstore.StorageKey))
		require.True(t, os.IsNotExist(err))
	})

	t.Run("clear on an empty store is fine", func(t *testing.T) {
		storage, err := tokenstore.NewFileStorage(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, tokenstore.New(storage).Clear())
	})

	t.Run("missing file reads as empty", func(t *testing.T) {
		storage, err := tokenstore.NewFileStorage(t.TempDir())
		require.NoError(t, err)
		require.Empty(t, tokenstore.New(storage).Get())
	})

	t.Run("get caches the persisted value", func(t *testing.T) {
		folder := t.TempDir()
		storage, err := tokenstore.NewFileStorage(folder)
		require.NoError(t, err)
		require.NoError(t, storage.Write("on-disk"))

		store := tokenstore.New(storage)
		require.Equal(t, "on-disk", store.Get())

		// Removing the file behind the store's back does not evict the cache.
		require.NoError(t, os.Remove(filepath.Join(folder, tokenstore.StorageKey)))
		require.Equal(t, "on-disk", store.Get())
	})
}
