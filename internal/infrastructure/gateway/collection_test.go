package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshare-backend/internal/infrastructure/kvstore"
)

type record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func TestCollectionMissingIsEmpty(t *testing.T) {
	col := NewCollection[record](kvstore.NewMemoryStore(), "test:records")

	records, err := col.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCollectionRoundTrip(t *testing.T) {
	col := NewCollection[record](kvstore.NewMemoryStore(), "test:records")
	ctx := context.Background()

	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, col.Save(ctx, []record{{ID: "1", Name: "first", CreatedAt: created}}))

	records, err := col.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "first", records[0].Name)
	assert.True(t, records[0].CreatedAt.Equal(created))
}

func TestCollectionUpdateAbortsOnError(t *testing.T) {
	store := kvstore.NewMemoryStore()
	col := NewCollection[record](store, "test:records")
	ctx := context.Background()

	require.NoError(t, col.Save(ctx, []record{{ID: "1"}}))

	boom := errors.New("boom")
	err := col.Update(ctx, func(records []record) ([]record, error) {
		return append(records, record{ID: "2"}), boom
	})
	require.ErrorIs(t, err, boom)

	records, err := col.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCollectionCorruptPayload(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "test:records", []byte("{not json"), 0))

	col := NewCollection[record](store, "test:records")
	_, err := col.Load(ctx)
	require.ErrorIs(t, err, ErrCorruptData)
}

func TestExpiryClampsToOneSecond(t *testing.T) {
	assert.Equal(t, time.Second, Expiry(time.Now().Add(-time.Hour)))

	ttl := Expiry(time.Now().Add(time.Hour))
	assert.Greater(t, ttl, 59*time.Minute)
}
