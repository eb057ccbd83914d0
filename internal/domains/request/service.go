package request

import "context"

// Service owns the collection-request workflow.
type Service interface {
	// Create opens a pending request on an available book and marks the
	// book requested. Returns book.ErrBookNotFound when the book does not
	// exist and ErrBookNotAvailable when it is already claimed.
	Create(ctx context.Context, collectorID string, req *CreateRequest) (*CollectionRequest, error)

	// Get fetches one request by ID.
	Get(ctx context.Context, id string) (*CollectionRequest, error)

	// ListFor returns the requests visible to a user: their own for
	// collectors, requests on their books for donors.
	ListFor(ctx context.Context, userID, role string) ([]CollectionRequest, error)

	// UpdateStatus moves a request to a new status. Approving a request
	// marks its book collected.
	UpdateStatus(ctx context.Context, id string, status Status) (*CollectionRequest, error)
}
