package service

import (
	"context"
	"errors"
	"strings"

	"bookreview/internal/models"
	"bookreview/internal/repository"
)

// Domain errors for catalog flows.
var (
	ErrBookNotFound = errors.New("book not found")
)

// CatalogService produces the filtered, paginated catalog view.
type CatalogService struct {
	books           repository.Books
	defaultPageSize int
}

const fallbackPageSize = 10

func NewCatalogService(books repository.Books, defaultPageSize int) *CatalogService {
	if defaultPageSize < 1 {
		defaultPageSize = fallbackPageSize
	}
	return &CatalogService{books: books, defaultPageSize: defaultPageSize}
}

// ListBooks returns one page of books matching the filter. The page is a
// strict partition of the filtered set: for a stable dataset, walking the
// pages in order yields every match exactly once.
func (s *CatalogService) ListBooks(ctx context.Context, f BookFilter) (BookPage, error) {
	page, size := normalizePage(f.Page, f.PageSize, s.defaultPageSize)

	total, err := s.books.Count(ctx, f.Query)
	if err != nil {
		return BookPage{}, err
	}
	books, err := s.books.List(ctx, f.Query, size, (page-1)*size)
	if err != nil {
		return BookPage{}, err
	}

	return BookPage{
		Books:    books,
		PageMeta: buildMeta(page, size, total),
	}, nil
}

// GetBook returns one book or ErrBookNotFound.
func (s *CatalogService) GetBook(ctx context.Context, id int) (*models.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	return b, nil
}

// BookInput is the administrative/seeding creation payload.
type BookInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ISBN        string `json:"isbn" validate:"required"`
}

// AddBook creates a catalog entry. Duplicate ISBNs surface as a field error.
func (s *CatalogService) AddBook(ctx context.Context, in BookInput) (int, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.ISBN = strings.TrimSpace(in.ISBN)
	if fe := validateStruct(in); fe != nil {
		return 0, fe
	}

	id, err := s.books.Create(ctx, models.Book{
		Title:       in.Title,
		Description: in.Description,
		ISBN:        in.ISBN,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, FieldErrors{"isbn": msgISBNTaken}
		}
		return 0, err
	}
	return id, nil
}

// isUniqueViolation matches SQLite's unique-constraint failure text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
