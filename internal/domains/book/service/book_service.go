package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookshare-backend/internal/domains/book"
	"bookshare-backend/internal/domains/user"
)

type bookService struct {
	repo  book.Repository
	users user.Repository
}

// NewBookService wires the catalog engine. The user repository supplies
// the donor snapshot embedded into every new listing.
func NewBookService(repo book.Repository, users user.Repository) book.Service {
	return &bookService{repo: repo, users: users}
}

func (s *bookService) List(ctx context.Context) ([]book.Book, error) {
	return s.repo.List(ctx)
}

func (s *bookService) Get(ctx context.Context, id string) (*book.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *bookService) Add(ctx context.Context, donorID string, req book.AddBookRequest) (*book.Book, error) {
	donor, err := s.users.FindByID(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("find donor: %w", err)
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	newBook := &book.Book{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Condition:   req.Condition,
		Description: req.Description,
		Images:      images,
		DonorID:     donor.ID,
		Donor:       donor.Sanitized(),
		Location:    req.Location,
		Status:      book.StatusAvailable,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Append(ctx, newBook); err != nil {
		return nil, fmt.Errorf("append book: %w", err)
	}

	log.Info().Str("book_id", newBook.ID).Str("donor_id", donor.ID).Msg("book listed")
	return newBook, nil
}

func (s *bookService) UpdateStatus(ctx context.Context, id string, status book.Status) error {
	if !status.Valid() {
		return book.ErrInvalidStatus
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", book.ErrInvalidStatusTransition, current.Status, status)
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *bookService) Search(ctx context.Context, query string, f book.Filters) ([]book.Book, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	genre := strings.ToLower(f.Genre)

	results := make([]book.Book, 0, len(records))
	for _, b := range records {
		if query != "" && !matchesQuery(b, query) {
			continue
		}
		if genre != "" && !strings.Contains(strings.ToLower(b.Genre), genre) {
			continue
		}
		if f.Condition != "" && b.Condition != f.Condition {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		results = append(results, b)
	}
	return results, nil
}

// matchesQuery is a case-insensitive substring match over the three
// searchable fields, any one of them sufficing.
func matchesQuery(b book.Book, query string) bool {
	return strings.Contains(strings.ToLower(b.Title), query) ||
		strings.Contains(strings.ToLower(b.Author), query) ||
		strings.Contains(strings.ToLower(b.Genre), query)
}

// ========================================
// SAMPLE DATA
// ========================================

func (s *bookService) SeedSampleCatalog(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	sampleDonor := user.User{
		ID:        "sample1",
		Name:      "Sample Donor",
		Email:     "donor@example.com",
		Role:      user.RoleDonor,
		CreatedAt: now,
	}
	sampleCover := "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg?auto=compress&cs=tinysrgb&w=400"

	samples := []book.Book{
		{
			ID:          uuid.NewString(),
			Title:       "The Great Gatsby",
			Author:      "F. Scott Fitzgerald",
			Genre:       "Classic Literature",
			Condition:   book.ConditionGood,
			Description: "A timeless classic about the American Dream",
			Images:      []string{sampleCover},
			DonorID:     sampleDonor.ID,
			Donor:       sampleDonor,
			Location:    book.Location{Lat: 40.7128, Lng: -74.0060, Address: "123 Main St, New York, NY 10001"},
			Status:      book.StatusAvailable,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "To Kill a Mockingbird",
			Author:      "Harper Lee",
			Genre:       "Fiction",
			Condition:   book.ConditionExcellent,
			Description: "A gripping tale of racial injustice and childhood",
			Images:      []string{sampleCover},
			DonorID:     sampleDonor.ID,
			Donor:       sampleDonor,
			Location:    book.Location{Lat: 40.7589, Lng: -73.9851, Address: "456 Park Ave, New York, NY 10022"},
			Status:      book.StatusAvailable,
			CreatedAt:   now,
		},
	}

	for i := range samples {
		if err := s.repo.Append(ctx, &samples[i]); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	log.Info().Int("count", len(samples)).Msg("sample catalog seeded")
	return nil
}
