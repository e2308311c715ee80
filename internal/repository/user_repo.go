package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookreview/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, first_name, last_name, email, password_hash) VALUES (?, ?, ?, ?, ?)`

	selectUserByUsernameSQL = `SELECT id, username, first_name, last_name, email, password_hash FROM users WHERE username = ?`

	selectUserByIDSQL = `SELECT id, username, first_name, last_name, email, password_hash FROM users WHERE id = ?`

	updateUserSQL = `UPDATE users SET username = ?, first_name = ?, last_name = ?, email = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username, u.FirstName, u.LastName, u.Email, u.PasswordHash,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// GetByID fetches a user by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByIDSQL, id).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return &u, nil
}

// Update persists profile fields (password is managed separately).
func (r *UserRepository) Update(ctx context.Context, u models.User) error {
	res, err := r.db.ExecContext(ctx, updateUserSQL,
		u.Username, u.FirstName, u.LastName, u.Email, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %d: %w", u.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update user %d: no such user", u.ID)
	}
	return nil
}
