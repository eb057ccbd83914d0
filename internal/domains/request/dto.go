package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateRequest asks to collect a listed book.
type CreateRequest struct {
	BookID  string  `json:"bookId" binding:"required"`
	Message *string `json:"message"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("bookId is required")),
		validation.Field(&r.Message, validation.Length(0, 1000)),
	)
}

// UpdateStatusRequest moves a request along its lifecycle.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In(StatusPending, StatusApproved, StatusRejected, StatusCompleted).
				Error("status must be pending, approved, rejected or completed"),
		),
	)
}
