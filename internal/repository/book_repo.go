package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookreview/internal/models"
)

type BookSQLite struct {
	db *sql.DB
}

func NewBookSQLite(db *sql.DB) *BookSQLite { return &BookSQLite{db: db} }

// Ensure implementation of Books interface at compile time.
var _ Books = (*BookSQLite)(nil)

const (
	insertBookSQL = `INSERT INTO books (title, description, isbn, created_at) VALUES (?, ?, ?, ?)`

	selectBookByIDSQL = `SELECT id, title, description, isbn, created_at FROM books WHERE id = ?`

	// instr() keeps the filter an exact, case-sensitive substring match, so
	// "Shoe Dog" matches only that phrase and LIKE wildcards need no escaping.
	selectBooksSQL = `
		SELECT id, title, description, isbn, created_at FROM books
		WHERE (? = '' OR instr(title, ?) > 0)
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	countBooksSQL = `SELECT COUNT(*) FROM books WHERE (? = '' OR instr(title, ?) > 0)`
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Create inserts a new book and returns its ID.
func (r *BookSQLite) Create(ctx context.Context, b models.Book) (int, error) {
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertBookSQL,
		b.Title,
		b.Description,
		b.ISBN,
		createdAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert book %q: %w", b.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for book %q: %w", b.Title, err)
	}
	return int(lastID), nil
}

// GetByID fetches a book by ID. Returns (nil, nil) if not found.
func (r *BookSQLite) GetByID(ctx context.Context, id int) (*models.Book, error) {
	var b models.Book
	err := r.db.QueryRowContext(ctx, selectBookByIDSQL, id).Scan(
		&b.ID, &b.Title, &b.Description, &b.ISBN, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book %d: %w", id, err)
	}
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}

// List returns the requested slice of books, filtered by title substring
// when titleSubstr is non-empty, in creation (id) order.
func (r *BookSQLite) List(ctx context.Context, titleSubstr string, limit, offset int) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, selectBooksSQL, titleSubstr, titleSubstr, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0, limit)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.ISBN, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		b.CreatedAt = b.CreatedAt.UTC()
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of books matching the same filter as List.
func (r *BookSQLite) Count(ctx context.Context, titleSubstr string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countBooksSQL, titleSubstr, titleSubstr).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}
