package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrSessionNotFound    = errors.New("session not found")
)

// Service-level errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownProvider    = errors.New("unknown identity provider")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrSessionExpired     = errors.New("session has expired")
)
