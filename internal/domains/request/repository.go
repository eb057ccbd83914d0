package request

import "context"

// Repository is the request data access contract.
type Repository interface {
	// List returns all requests in insertion order.
	List(ctx context.Context) ([]CollectionRequest, error)

	// FindByID returns ErrRequestNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*CollectionRequest, error)

	// Append adds a request.
	Append(ctx context.Context, r *CollectionRequest) error

	// Update rewrites one request in place, matched by ID.
	// Returns ErrRequestNotFound when no record matches.
	Update(ctx context.Context, r *CollectionRequest) error

	// Delete removes one request by ID.
	// Returns ErrRequestNotFound when no record matches.
	Delete(ctx context.Context, id string) error

	// CountActiveForBook counts pending and approved requests on a book.
	CountActiveForBook(ctx context.Context, bookID string) (int, error)
}
