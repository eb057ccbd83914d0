package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookshare-backend/internal/domains/book"
	"bookshare-backend/internal/domains/request"
	"bookshare-backend/internal/domains/user"
)

type requestService struct {
	repo  request.Repository
	books book.Service
	users user.Repository

	// mu serializes the write workflows. Each one reads and writes across
	// the request and book collections, which lock independently, so the
	// availability check is only authoritative while no other workflow
	// runs.
	mu sync.Mutex
}

// NewRequestService wires the collection workflow. It drives the book
// lifecycle through the book service so status transitions stay in one
// place.
func NewRequestService(repo request.Repository, books book.Service, users user.Repository) request.Service {
	return &requestService{repo: repo, books: books, users: users}
}

func (s *requestService) Create(ctx context.Context, collectorID string, req *request.CreateRequest) (*request.CollectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.books.Get(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if b.Status != book.StatusAvailable {
		return nil, request.ErrBookNotAvailable
	}

	active, err := s.repo.CountActiveForBook(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("count active requests: %w", err)
	}
	if active > 0 {
		return nil, request.ErrBookNotAvailable
	}

	collector, err := s.users.FindByID(ctx, collectorID)
	if err != nil {
		return nil, fmt.Errorf("find collector: %w", err)
	}

	now := time.Now()
	newRequest := &request.CollectionRequest{
		ID:          uuid.NewString(),
		BookID:      b.ID,
		Book:        *b,
		CollectorID: collector.ID,
		Collector:   collector.Sanitized(),
		DonorID:     b.DonorID,
		Status:      request.StatusPending,
		Message:     req.Message,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Append(ctx, newRequest); err != nil {
		return nil, fmt.Errorf("append request: %w", err)
	}
	if err := s.books.UpdateStatus(ctx, b.ID, book.StatusRequested); err != nil {
		// Do not leave a pending request on a book that never left the
		// available pool.
		if delErr := s.repo.Delete(ctx, newRequest.ID); delErr != nil {
			log.Error().Err(delErr).Str("request_id", newRequest.ID).Msg("failed to remove request after book update failure")
		}
		return nil, fmt.Errorf("mark book requested: %w", err)
	}

	log.Info().
		Str("request_id", newRequest.ID).
		Str("book_id", b.ID).
		Str("collector_id", collector.ID).
		Msg("collection request created")
	return newRequest, nil
}

func (s *requestService) Get(ctx context.Context, id string) (*request.CollectionRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *requestService) ListFor(ctx context.Context, userID, role string) ([]request.CollectionRequest, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]request.CollectionRequest, 0, len(records))
	switch user.Role(role) {
	case user.RoleCollector:
		for _, r := range records {
			if r.CollectorID == userID {
				results = append(results, r)
			}
		}
	case user.RoleDonor:
		for _, r := range records {
			if r.DonorID == userID {
				results = append(results, r)
			}
		}
	default:
		return nil, user.ErrInvalidRole
	}
	return results, nil
}

func (s *requestService) UpdateStatus(ctx context.Context, id string, status request.Status) (*request.CollectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !status.Valid() {
		return nil, request.ErrInvalidStatus
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", request.ErrInvalidStatusTransition, current.Status, status)
	}

	current.Status = status
	current.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}

	// Approval hands the book over. A rejected request leaves the book in
	// requested state; the donor relists it explicitly.
	if status == request.StatusApproved {
		if err := s.books.UpdateStatus(ctx, current.BookID, book.StatusCollected); err != nil {
			return nil, fmt.Errorf("mark book collected: %w", err)
		}
	}

	log.Info().
		Str("request_id", current.ID).
		Str("status", string(status)).
		Msg("request status updated")
	return current, nil
}
