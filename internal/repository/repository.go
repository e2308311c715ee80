package repository

import (
	"context"
	"database/sql"
	"time"

	"bookreview/internal/models"

	"github.com/redis/go-redis/v9"
)

type Books interface {
	Create(ctx context.Context, b models.Book) (int, error)
	GetByID(ctx context.Context, id int) (*models.Book, error)
	// List returns books whose title contains titleSubstr (all books when
	// empty), in creation order, sliced by limit/offset.
	List(ctx context.Context, titleSubstr string, limit, offset int) ([]models.Book, error)
	Count(ctx context.Context, titleSubstr string) (int, error)
}

type Reviews interface {
	Create(ctx context.Context, r models.Review) (int, error)
	// ListByBook returns reviews in creation order with author identity.
	ListByBook(ctx context.Context, bookID int) ([]models.Review, error)
	// ListRecent returns reviews newest first with author and book title.
	ListRecent(ctx context.Context, limit, offset int) ([]models.Review, error)
	Count(ctx context.Context) (int, error)
}

type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Update(ctx context.Context, u models.User) error
}

// Sessions tracks tokens revoked before their natural expiry (sign-out).
type Sessions interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Repository struct {
	Books    Books
	Reviews  Reviews
	Users    Users
	Sessions Sessions
}

func NewRepository(db *sql.DB, rdb *redis.Client) *Repository {
	return &Repository{
		Books:    NewBookSQLite(db),
		Reviews:  NewReviewSQLite(db),
		Users:    NewUserRepository(db),
		Sessions: NewSessionRedis(rdb),
	}
}
