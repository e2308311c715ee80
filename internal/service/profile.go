package service

import (
	"context"
	"strings"

	"bookreview/internal/models"
	"bookreview/internal/repository"
)

// ProfileService reads and edits the acting user's own account fields.
type ProfileService struct {
	users repository.Users
}

func NewProfileService(users repository.Users) *ProfileService {
	return &ProfileService{users: users}
}

// Get returns the user's profile or ErrUserNotFound.
func (s *ProfileService) Get(ctx context.Context, userID int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ProfileInput is the profile edit form. Password changes go through a
// separate flow and are not accepted here.
type ProfileInput struct {
	Username  string `json:"username" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// Update validates and persists profile fields, then returns the updated
// user. Renaming to a username held by another user is a field error.
func (s *ProfileService) Update(ctx context.Context, userID int, in ProfileInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if fe := validateStruct(in); fe != nil {
		return nil, fe
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if in.Username != u.Username {
		other, err := s.users.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, FieldErrors{"username": msgUsernameTaken}
		}
	}

	u.Username = in.Username
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Email = in.Email

	if err := s.users.Update(ctx, *u); err != nil {
		if isUniqueViolation(err) {
			return nil, FieldErrors{"username": msgUsernameTaken}
		}
		return nil, err
	}
	return u, nil
}
