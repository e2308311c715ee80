package service

import (
	"context"

	"bookreview/internal/logger"
	"bookreview/internal/mailer"
	"bookreview/internal/models"
	"bookreview/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, in RegisterInput) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(ctx context.Context, accessToken string) (int, error)
	Logout(ctx context.Context, accessToken string) error
}

// Catalog exposes the filtered, paginated view over books.
type Catalog interface {
	ListBooks(ctx context.Context, f BookFilter) (BookPage, error)
	GetBook(ctx context.Context, id int) (*models.Book, error)
	AddBook(ctx context.Context, in BookInput) (int, error)
}

// Reviews exposes review aggregation per book, review submission, and the
// newest-first home highlights view.
type Reviews interface {
	ListForBook(ctx context.Context, bookID int) ([]models.Review, error)
	Add(ctx context.Context, in ReviewInput) (int, error)
	Highlights(ctx context.Context, p PageParams) (ReviewPage, error)
}

type Profile interface {
	Get(ctx context.Context, userID int) (*models.User, error)
	Update(ctx context.Context, userID int, in ProfileInput) (*models.User, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Catalog
	Reviews
	Authorization
	Profile
}

// Options carries startup configuration into the service layer.
type Options struct {
	Auth            AuthOptions
	DefaultPageSize int
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, mail mailer.Mailer, log *logger.Logger, opts Options) *Service {
	return &Service{
		Catalog:       NewCatalogService(repos.Books, opts.DefaultPageSize),
		Reviews:       NewReviewService(repos.Reviews, repos.Books, opts.DefaultPageSize),
		Authorization: NewAuthService(repos.Users, repos.Sessions, mail, log, opts.Auth),
		Profile:       NewProfileService(repos.Users),
	}
}
