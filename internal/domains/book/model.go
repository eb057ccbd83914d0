package book

import (
	"time"

	"bookshare-backend/internal/domains/user"
)

// Condition grades how worn a listed book is.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Status is the listing lifecycle. Transitions only move forward:
// available -> requested -> collected.
type Status string

const (
	StatusAvailable Status = "available"
	StatusRequested Status = "requested"
	StatusCollected Status = "collected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusRequested, StatusCollected:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal forward step from s.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusAvailable:
		return next == StatusRequested
	case StatusRequested:
		return next == StatusCollected
	}
	return false
}

// Location is where the book can be picked up.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Book is a donation listing. Donor is a creation-time snapshot of the
// owning donor's record (sanitized); it does not follow later profile
// changes.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	DonorID     string    `json:"donorId"`
	Donor       user.User `json:"donor"`
	Location    Location  `json:"location"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
