package user

import "context"

// Repository is the data access contract for identity records. The
// interface keeps the store swappable and lets services be tested against
// the in-memory driver.
type Repository interface {
	// Create appends a new user.
	// Returns ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, u *User) error

	// Upsert inserts or replaces a user by id. Used for provider
	// identities, which arrive with ids minted outside this service.
	Upsert(ctx context.Context, u *User) error

	// FindByID returns ErrUserNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List returns all users in insertion order.
	List(ctx context.Context) ([]User, error)
}

// SessionRepository stores the per-token session markers.
type SessionRepository interface {
	// Put stores the session until its expiry.
	Put(ctx context.Context, s Session) error

	// Get returns ErrSessionNotFound for an unknown token and
	// ErrSessionExpired for one past its expiry.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session. Removing an absent session is a no-op.
	Delete(ctx context.Context, token string) error
}
