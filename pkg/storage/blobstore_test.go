package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemBlobStore_PutGet(t *testing.T) {
	store := NewMemBlobStore()
	require.NoError(t, store.Open(false))

	_, ok := store.Get("credentials")
	assert.False(t, ok)

	n, err := store.Put("credentials", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, ok := store.Get("credentials")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)

	require.NoError(t, store.Close())
}

func TestMemBlobStore_GetReturnsCopy(t *testing.T) {
	store := NewMemBlobStore()
	_, err := store.Put("k", []byte{1, 2, 3})
	require.NoError(t, err)

	got, ok := store.Get("k")
	require.True(t, ok)
	got[0] = 0xEE

	again, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestPebbleStore_PutGetAcrossOpens(t *testing.T) {
	path := t.TempDir()

	store := NewPebbleStore(path)
	require.NoError(t, store.Open(false))
	n, err := store.Put("credentials", []byte{9, 8, 7})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, store.Close())

	// Reopen read-only and observe the committed blob.
	store = NewPebbleStore(path)
	require.NoError(t, store.Open(true))
	got, ok := store.Get("credentials")
	require.True(t, ok)
	assert.Equal(t, []byte{9, 8, 7}, got)

	_, ok = store.Get("absent")
	assert.False(t, ok)
	require.NoError(t, store.Close())
}

func TestPebbleStore_PutRequiresOpen(t *testing.T) {
	store := NewPebbleStore(t.TempDir())
	_, err := store.Put("k", []byte{1})
	assert.Error(t, err)
}
