package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bookreview/internal/models"
)

type ReviewSQLite struct {
	db *sql.DB
}

func NewReviewSQLite(db *sql.DB) *ReviewSQLite { return &ReviewSQLite{db: db} }

var _ Reviews = (*ReviewSQLite)(nil)

const (
	insertReviewSQL = `INSERT INTO reviews (book_id, user_id, stars_given, comment, created_at) VALUES (?, ?, ?, ?, ?)`

	selectReviewsByBookSQL = `
		SELECT r.id, r.book_id, r.user_id, r.stars_given, r.comment, r.created_at,
		       u.username, u.first_name, u.last_name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = ?
		ORDER BY r.id ASC
	`

	selectRecentReviewsSQL = `
		SELECT r.id, r.book_id, r.user_id, r.stars_given, r.comment, r.created_at,
		       u.username, u.first_name, u.last_name, b.title
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN books b ON b.id = r.book_id
		ORDER BY r.id DESC
		LIMIT ? OFFSET ?
	`

	countReviewsSQL = `SELECT COUNT(*) FROM reviews`
)

// Create inserts a new review and returns its ID.
func (r *ReviewSQLite) Create(ctx context.Context, rev models.Review) (int, error) {
	createdAt := rev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rev.BookID,
		rev.UserID,
		rev.StarsGiven,
		rev.Comment,
		createdAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert review for book %d: %w", rev.BookID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for review: %w", err)
	}
	return int(lastID), nil
}

// ListByBook returns all reviews of a book in creation order, with the
// author identity joined in.
func (r *ReviewSQLite) ListByBook(ctx context.Context, bookID int) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, selectReviewsByBookSQL, bookID)
	if err != nil {
		return nil, fmt.Errorf("select reviews for book %d: %w", bookID, err)
	}
	defer rows.Close()
	return scanReviews(rows, false)
}

// ListRecent returns reviews newest first, with author and book title.
func (r *ReviewSQLite) ListRecent(ctx context.Context, limit, offset int) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, selectRecentReviewsSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select recent reviews: %w", err)
	}
	defer rows.Close()
	return scanReviews(rows, true)
}

// Count returns the total number of reviews.
func (r *ReviewSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countReviewsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

// scanReviews drains rows into reviews; withBookTitle matches the extra
// column selected by ListRecent.
func scanReviews(rows *sql.Rows, withBookTitle bool) ([]models.Review, error) {
	out := make([]models.Review, 0, 16)
	for rows.Next() {
		var (
			rev models.Review
			a   models.Author
		)
		dest := []any{
			&rev.ID, &rev.BookID, &rev.UserID, &rev.StarsGiven, &rev.Comment, &rev.CreatedAt,
			&a.Username, &a.FirstName, &a.LastName,
		}
		if withBookTitle {
			dest = append(dest, &rev.BookTitle)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		rev.CreatedAt = rev.CreatedAt.UTC()
		rev.Author = &a
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
