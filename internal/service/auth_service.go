package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookreview/internal/logger"
	"bookreview/internal/mailer"
	"bookreview/internal/models"
	"bookreview/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenRevoked    = errors.New("token has been signed out")
)

// AuthOptions carries the signing key and token lifetime from config.
type AuthOptions struct {
	SigningKey string
	TokenTTL   time.Duration
}

// AuthService handles registration, credential checks, and session tokens.
type AuthService struct {
	users    repository.Users
	sessions repository.Sessions
	mail     mailer.Mailer
	log      *logger.Logger
	opts     AuthOptions
}

func NewAuthService(users repository.Users, sessions repository.Sessions, mail mailer.Mailer, log *logger.Logger, opts AuthOptions) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if mail == nil {
		mail = mailer.Noop{}
	}
	return &AuthService{users: users, sessions: sessions, mail: mail, log: log, opts: opts}
}

// RegisterInput is the sign-up form. Email is optional but must be well
// formed when present.
type RegisterInput struct {
	Username  string `json:"username" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required"`
}

// SignUp validates the form, hashes the password, and creates the user.
// Nothing is persisted when validation fails.
func (s *AuthService) SignUp(ctx context.Context, in RegisterInput) (int, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if fe := validateStruct(in); fe != nil {
		return 0, fe
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, FieldErrors{"username": msgUsernameTaken}
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.users.Create(ctx, models.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, FieldErrors{"username": msgUsernameTaken}
		}
		return 0, err
	}

	// Best-effort side effect; the registration is already committed.
	if err := s.mail.SendWelcome(in.Email, in.Username); err != nil && s.log != nil {
		s.log.Errorw("welcome_mail_failed", "username", in.Username, "err", err)
	}

	return id, nil
}

// Claims defines JWT claims. The jti (RegisteredClaims.ID) identifies the
// session so a sign-out can revoke it.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken validates credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID)
}

// ParseToken parses a JWT, rejects revoked sessions, and returns the userID.
func (s *AuthService) ParseToken(ctx context.Context, accessToken string) (int, error) {
	claims, err := s.parseClaims(accessToken)
	if err != nil {
		return 0, err
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return 0, err
	}
	if revoked {
		return 0, ErrTokenRevoked
	}

	return claims.UserID, nil
}

// Logout revokes the token's session for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.parseClaims(accessToken)
	if err != nil {
		return err
	}

	ttl := s.opts.TokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.sessions.Revoke(ctx, claims.ID, ttl)
}

func (s *AuthService) parseClaims(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.opts.SigningKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.opts.SigningKey))
}
