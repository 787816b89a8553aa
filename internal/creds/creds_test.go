package creds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_LoadBeforeSaveReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SaveThenLoadRoundTrips(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveToken("tok-1"))
	token, err := store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// A second save replaces, never appends.
	require.NoError(t, store.SaveToken("tok-2"))
	token, err = store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}

func TestStore_DeleteRemovesToken(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveToken("tok"))
	require.NoError(t, store.DeleteToken())

	_, err := store.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteAbsentTokenIsNoError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.DeleteToken())
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, store.SaveToken("durable"))
	require.NoError(t, store.Close())

	reopened, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	token, err := reopened.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "durable", token)
}
