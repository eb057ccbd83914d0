package book

import "context"

// Repository is the catalog data access contract.
type Repository interface {
	// List returns the full catalog in insertion order.
	List(ctx context.Context) ([]Book, error)

	// FindByID returns ErrBookNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*Book, error)

	// Append adds a listing to the catalog.
	Append(ctx context.Context, b *Book) error

	// UpdateStatus rewrites one book's status in place.
	// Returns ErrBookNotFound when no record matches.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Count reports the catalog size.
	Count(ctx context.Context) (int, error)
}
