package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSaveAndLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "key", []byte(`{"a":1}`), 0))

	data, found, err := store.Load(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"a":1}`), data)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryStore()

	data, found, err := store.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "key", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, found, err := store.Load(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", []byte("1"), 0))
	require.NoError(t, store.Save(ctx, "b", []byte("2"), 0))
	require.NoError(t, store.Delete(ctx, "a", "b"))

	_, found, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("original")
	require.NoError(t, store.Save(ctx, "key", payload, 0))
	payload[0] = 'X'

	data, _, err := store.Load(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), data)

	// Mutating the loaded slice must not corrupt the stored value either.
	data[0] = 'Y'
	again, _, err := store.Load(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}
