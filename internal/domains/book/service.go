package book

import "context"

// Service is the catalog business logic contract.
type Service interface {
	// List returns the full catalog, insertion order. Pure read.
	List(ctx context.Context) ([]Book, error)

	// Get returns ErrBookNotFound when no record matches.
	Get(ctx context.Context, id string) (*Book, error)

	// Add lists a new book for the given donor, embedding a sanitized
	// snapshot of the donor's record.
	Add(ctx context.Context, donorID string, req AddBookRequest) (*Book, error)

	// UpdateStatus moves a book along its lifecycle. Rejects unknown
	// statuses (ErrInvalidStatus), unknown books (ErrBookNotFound) and
	// backward transitions (ErrInvalidStatusTransition).
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Search matches query case-insensitively against title, author and
	// genre (any of the three), then applies the facet filters. An empty
	// query matches the whole catalog. Callers that only want claimable
	// books set Filters.Status themselves.
	Search(ctx context.Context, query string, f Filters) ([]Book, error)

	// SeedSampleCatalog inserts the demo listings when the catalog is
	// empty. Idempotent.
	SeedSampleCatalog(ctx context.Context) error
}
