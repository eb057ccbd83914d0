package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshare-backend/internal/domains/book"
	bookRepo "bookshare-backend/internal/domains/book/repository"
	bookService "bookshare-backend/internal/domains/book/service"
	"bookshare-backend/internal/domains/request"
	"bookshare-backend/internal/domains/request/repository"
	"bookshare-backend/internal/domains/user"
	userRepo "bookshare-backend/internal/domains/user/repository"
	"bookshare-backend/internal/infrastructure/kvstore"
)

type fixture struct {
	requests  request.Service
	books     book.Service
	collector *user.User
	donor     *user.User
	book      *book.Book
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, kvstore.NewMemoryStore())
}

func newFixtureWith(t *testing.T, store kvstore.Store) *fixture {
	t.Helper()
	ctx := context.Background()

	users := userRepo.NewStoreRepository(store)
	books := bookService.NewBookService(bookRepo.NewStoreRepository(store), users)
	requests := NewRequestService(repository.NewStoreRepository(store), books, users)

	donor := &user.User{ID: "donor-1", Name: "Alex Donor", Email: "alex@example.com", Role: user.RoleDonor, CreatedAt: time.Now()}
	collector := &user.User{
		ID:           "collector-1",
		Name:         "Casey Collector",
		Email:        "casey@example.com",
		Role:         user.RoleCollector,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, users.Upsert(ctx, donor))
	require.NoError(t, users.Upsert(ctx, collector))

	b, err := books.Add(ctx, donor.ID, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Condition: book.ConditionGood,
	})
	require.NoError(t, err)

	return &fixture{requests: requests, books: books, collector: collector, donor: donor, book: b}
}

func TestCreateRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	msg := "I can pick it up this weekend"
	r, err := f.requests.Create(ctx, f.collector.ID, &request.CreateRequest{BookID: f.book.ID, Message: &msg})
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, request.StatusPending, r.Status)
	assert.Equal(t, f.book.ID, r.BookID)
	assert.Equal(t, f.donor.ID, r.DonorID)
	assert.Equal(t, f.collector.ID, r.CollectorID)
	assert.Equal(t, f.collector.Name, r.Collector.Name)
	assert.Empty(t, r.Collector.PasswordHash)
	require.NotNil(t, r.Message)
	assert.Equal(t, msg, *r.Message)

	// The book leaves the available pool immediately.
	b, err := f.books.Get(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusRequested, b.Status)
}

func TestCreateRequestUnknownBook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.requests.Create(ctx, f.collector.ID, &request.CreateRequest{BookID: "missing"})
	require.ErrorIs(t, err, book.ErrBookNotFound)

	records, err := f.requests.ListFor(ctx, f.collector.ID, string(user.RoleCollector))
	require.NoError(t, err)
	assert.Empty(t, records)
}

// slowStore injects read latency so interleavings that real network
// drivers produce show up with the in-memory store too.
type slowStore struct {
	kvstore.Store
}

func (s *slowStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(200 * time.Microsecond)
	return s.Store.Load(ctx, key)
}

func TestConcurrentCreateKeepsOneActiveRequest(t *testing.T) {
	for i := 0; i < 25; i++ {
		f := newFixtureWith(t, &slowStore{Store: kvstore.NewMemoryStore()})
		ctx := context.Background()

		// A double-submitted claim: both calls race on the same book.
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for j := range errs {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				_, errs[j] = f.requests.Create(ctx, f.collector.ID, &request.CreateRequest{BookID: f.book.ID})
			}(j)
		}
		wg.Wait()

		failures := 0
		for _, err := range errs {
			if err != nil {
				require.ErrorIs(t, err, request.ErrBookNotAvailable)
				failures++
			}
		}
		require.Equal(t, 1, failures, "exactly one of the racing claims must lose")

		// The losing call must not leave a persisted request behind.
		records, err := f.requests.ListFor(ctx, f.collector.ID, string(user.RoleCollector))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, request.StatusPending, records[0].Status)

		b, err := f.books.Get(ctx, f.book.ID)
		require.NoError(t, err)
		assert.Equal(t, book.StatusRequested, b.Status)
	}
}

func TestCreateRequestBookAlreadyClaimed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.requests.Create(ctx, f.collector.ID, &request.CreateRequest{BookID: f.book.ID})
	require.NoError(t, err)

	_, err = f.requests.Create(ctx, f.collector.ID, &request.CreateRequest{BookID: f.book.ID})
	require.ErrorIs(t, err, request.ErrBookNotAvailable)
}

func TestApproveRequestCollectsBook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.requests.Create(ctx, f.collector.ID, &request.CreateRequest{BookID: f.book.ID})
	require.NoError(t, err)

	updated, err := f.requests.UpdateStatus(ctx, r.ID, request.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	b, err := f.books.Get(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusCollected, b.Status)

	// An approved handover can then complete.
	updated, err = f.requests.UpdateStatus(ctx, r.ID, request.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, request.StatusCompleted, updated.Status)
}

func TestRejectRequestKeepsBookRequested(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.requests.Create(ctx, f.collector.ID, &request.CreateRequest{BookID: f.book.ID})
	require.NoError(t, err)

	updated, err := f.requests.UpdateStatus(ctx, r.ID, request.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, updated.Status)

	b, err := f.books.Get(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusRequested, b.Status)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.requests.Create(ctx, f.collector.ID, &request.CreateRequest{BookID: f.book.ID})
	require.NoError(t, err)

	// A pending request cannot complete without approval.
	_, err = f.requests.UpdateStatus(ctx, r.ID, request.StatusCompleted)
	require.ErrorIs(t, err, request.ErrInvalidStatusTransition)

	_, err = f.requests.UpdateStatus(ctx, r.ID, request.StatusRejected)
	require.NoError(t, err)

	// Rejected is terminal.
	_, err = f.requests.UpdateStatus(ctx, r.ID, request.StatusApproved)
	require.ErrorIs(t, err, request.ErrInvalidStatusTransition)

	_, err = f.requests.UpdateStatus(ctx, r.ID, request.Status("cancelled"))
	require.ErrorIs(t, err, request.ErrInvalidStatus)

	_, err = f.requests.UpdateStatus(ctx, "missing", request.StatusApproved)
	require.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestListFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.requests.Create(ctx, f.collector.ID, &request.CreateRequest{BookID: f.book.ID})
	require.NoError(t, err)

	mine, err := f.requests.ListFor(ctx, f.collector.ID, string(user.RoleCollector))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, r.ID, mine[0].ID)

	incoming, err := f.requests.ListFor(ctx, f.donor.ID, string(user.RoleDonor))
	require.NoError(t, err)
	require.Len(t, incoming, 1)

	other, err := f.requests.ListFor(ctx, "someone-else", string(user.RoleCollector))
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = f.requests.ListFor(ctx, f.donor.ID, "admin")
	require.ErrorIs(t, err, user.ErrInvalidRole)
}
