package service

import (
	"context"
	"strings"

	"bookreview/internal/models"
	"bookreview/internal/repository"
)

// ReviewService aggregates reviews per book and handles submissions.
type ReviewService struct {
	reviews         repository.Reviews
	books           repository.Books
	defaultPageSize int
}

func NewReviewService(reviews repository.Reviews, books repository.Books, defaultPageSize int) *ReviewService {
	if defaultPageSize < 1 {
		defaultPageSize = fallbackPageSize
	}
	return &ReviewService{reviews: reviews, books: books, defaultPageSize: defaultPageSize}
}

// ListForBook returns all reviews of a book in creation order.
// Returns ErrBookNotFound when the book does not exist.
func (s *ReviewService) ListForBook(ctx context.Context, bookID int) ([]models.Review, error) {
	b, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	return s.reviews.ListByBook(ctx, bookID)
}

// ReviewInput is a review submission by an authenticated user. The same
// user may review the same book more than once; every submission creates
// a fresh review.
type ReviewInput struct {
	BookID     int
	UserID     int
	StarsGiven int    `json:"stars_given"`
	Comment    string `json:"comment"`
}

const (
	minStars = 1
	maxStars = 5
)

// Add creates exactly one review tied to the acting user and target book.
func (s *ReviewService) Add(ctx context.Context, in ReviewInput) (int, error) {
	if in.StarsGiven < minStars || in.StarsGiven > maxStars {
		return 0, FieldErrors{"stars_given": msgStarsOutOfRange}
	}
	in.Comment = strings.TrimSpace(in.Comment)

	b, err := s.books.GetByID(ctx, in.BookID)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, ErrBookNotFound
	}

	return s.reviews.Create(ctx, models.Review{
		BookID:     in.BookID,
		UserID:     in.UserID,
		StarsGiven: in.StarsGiven,
		Comment:    in.Comment,
	})
}

// Highlights returns the newest reviews first, paginated, for the home
// page view.
func (s *ReviewService) Highlights(ctx context.Context, p PageParams) (ReviewPage, error) {
	page, size := normalizePage(p.Page, p.PageSize, s.defaultPageSize)

	total, err := s.reviews.Count(ctx)
	if err != nil {
		return ReviewPage{}, err
	}
	reviews, err := s.reviews.ListRecent(ctx, size, (page-1)*size)
	if err != nil {
		return ReviewPage{}, err
	}

	return ReviewPage{
		Reviews:  reviews,
		PageMeta: buildMeta(page, size, total),
	}, nil
}
