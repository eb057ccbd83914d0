package user

import "context"

// Service is the identity business logic contract.
type Service interface {
	// Register creates a credential account. Duplicate emails fail with
	// ErrEmailAlreadyExists.
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)

	// Login verifies credentials and issues a token plus session.
	// Unknown email and wrong password are indistinguishable
	// (ErrInvalidCredentials).
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// SignInWithProvider runs the mocked provider exchange, upserts the
	// provider identity and issues a token plus session.
	SignInWithProvider(ctx context.Context, provider string, role Role) (*AuthResponse, error)

	// Logout revokes the token's session. Idempotent.
	Logout(ctx context.Context, token string) error

	// IsSessionValid reports whether the token still has a live session.
	IsSessionValid(ctx context.Context, token string) (bool, error)

	// GetProfile returns the public representation of a user.
	GetProfile(ctx context.Context, id string) (*UserDTO, error)
}
