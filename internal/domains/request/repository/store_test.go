package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshare-backend/internal/domains/request"
	"bookshare-backend/internal/infrastructure/kvstore"
)

func TestDelete(t *testing.T) {
	repo := NewStoreRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &request.CollectionRequest{ID: "r1", BookID: "b1", Status: request.StatusPending}))
	require.NoError(t, repo.Append(ctx, &request.CollectionRequest{ID: "r2", BookID: "b2", Status: request.StatusPending}))

	require.NoError(t, repo.Delete(ctx, "r1"))

	_, err := repo.FindByID(ctx, "r1")
	require.ErrorIs(t, err, request.ErrRequestNotFound)

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "r2", remaining[0].ID)
}

func TestDeleteMissingRequest(t *testing.T) {
	repo := NewStoreRepository(kvstore.NewMemoryStore())

	err := repo.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, request.ErrRequestNotFound)
}
