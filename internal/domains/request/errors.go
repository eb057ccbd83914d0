package request

import "errors"

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrBookNotAvailable = errors.New("book is not available for collection")
	ErrInvalidStatus    = errors.New("invalid request status")

	ErrInvalidStatusTransition = errors.New("invalid request status transition")
)
