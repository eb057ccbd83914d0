package book

import "errors"

var (
	ErrBookNotFound            = errors.New("book not found")
	ErrInvalidStatus           = errors.New("invalid book status")
	ErrInvalidStatusTransition = errors.New("invalid book status transition")
)
