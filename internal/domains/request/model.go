package request

import (
	"time"

	"bookshare-backend/internal/domains/book"
	"bookshare-backend/internal/domains/user"
)

// Status is the request approval lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo enforces the forward-only lifecycle: a pending request
// is decided once, an approved request can only complete, and rejected
// and completed are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusCompleted
	}
	return false
}

// CollectionRequest is a collector's claim on a donor's book. Book and
// Collector are creation-time snapshots — immutable value copies that
// never re-sync with the live records.
type CollectionRequest struct {
	ID          string    `json:"id"`
	BookID      string    `json:"bookId"`
	Book        book.Book `json:"book"`
	CollectorID string    `json:"collectorId"`
	Collector   user.User `json:"collector"`
	DonorID     string    `json:"donorId"`
	Status      Status    `json:"status"`
	Message     *string   `json:"message,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
