package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshare-backend/internal/domains/book"
	"bookshare-backend/internal/domains/user"
	"bookshare-backend/internal/infrastructure/kvstore"
)

func TestStoredTimestampsSurviveReload(t *testing.T) {
	repo := NewStoreRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	listed := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	joined := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, &book.Book{
		ID:        "b1",
		Title:     "Dune",
		Author:    "Frank Herbert",
		Condition: book.ConditionGood,
		Images:    []string{},
		DonorID:   "d1",
		Donor: user.User{
			ID:        "d1",
			Name:      "Alex Donor",
			Role:      user.RoleDonor,
			CreatedAt: joined,
		},
		Status:    book.StatusAvailable,
		CreatedAt: listed,
	}))

	loaded, err := repo.FindByID(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, loaded.CreatedAt.Equal(listed))
	assert.True(t, loaded.Donor.CreatedAt.Equal(joined))
}

func TestUpdateStatusMissingBook(t *testing.T) {
	repo := NewStoreRepository(kvstore.NewMemoryStore())

	err := repo.UpdateStatus(context.Background(), "missing", book.StatusRequested)
	require.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestCount(t *testing.T) {
	repo := NewStoreRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Append(ctx, &book.Book{ID: "b1", Status: book.StatusAvailable}))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
