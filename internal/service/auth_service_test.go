package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookreview/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn        func(u models.User) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)
	GetByIDFn       func(id int) (*models.User, error)
	UpdateFn        func(u models.User) error

	createCalls []models.User
	getCalls    []string
	updateCalls []models.User
}

func (m *mockUserRepo) Create(_ context.Context, u models.User) (int, error) {
	m.createCalls = append(m.createCalls, u)
	if m.CreateFn == nil {
		return len(m.createCalls), nil
	}
	return m.CreateFn(u)
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	if m.GetByUsernameFn == nil {
		return nil, nil
	}
	return m.GetByUsernameFn(username)
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockUserRepo) Update(_ context.Context, u models.User) error {
	m.updateCalls = append(m.updateCalls, u)
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(u)
}

// fakeSessionStore tracks revocations in memory.
type fakeSessionStore struct {
	revoked map[string]bool
	err     error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{revoked: map[string]bool{}}
}

func (f *fakeSessionStore) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[tokenID] = true
	return nil
}

func (f *fakeSessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[tokenID], nil
}

// recordingMailer captures welcome sends.
type recordingMailer struct {
	sends []struct{ to, username string }
	err   error
}

func (r *recordingMailer) SendWelcome(to, username string) error {
	r.sends = append(r.sends, struct{ to, username string }{to, username})
	return r.err
}

func newTestAuthService(users *mockUserRepo, sessions *fakeSessionStore, mail *recordingMailer) *AuthService {
	return NewAuthService(users, sessions, mail, nil, AuthOptions{
		SigningKey: "test-signing-key",
		TokenTTL:   time.Hour,
	})
}

// --- SignUp tests ---

func TestAuthService_SignUp_HashesPasswordAndSendsWelcome(t *testing.T) {
	users := &mockUserRepo{
		CreateFn: func(u models.User) (int, error) { return 42, nil },
	}
	mail := &recordingMailer{}
	svc := newTestAuthService(users, newFakeSessionStore(), mail)

	id, err := svc.SignUp(context.Background(), RegisterInput{
		Username:  "Botirbekkkk",
		FirstName: "Botirbek",
		LastName:  "Ruzimboyev",
		Email:     "botirbek@gmail.com",
		Password:  "somepassword",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if len(users.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(users.createCalls))
	}
	created := users.createCalls[0]
	if created.FirstName != "Botirbek" || created.LastName != "Ruzimboyev" || created.Email != "botirbek@gmail.com" {
		t.Errorf("unexpected persisted fields: %+v", created)
	}
	// Stored value is a hash: not the plaintext, yet the plaintext verifies.
	if created.PasswordHash == "somepassword" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("somepassword")); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	if len(mail.sends) != 1 || mail.sends[0].to != "botirbek@gmail.com" || mail.sends[0].username != "Botirbekkkk" {
		t.Errorf("expected one welcome mail to the new user, got %+v", mail.sends)
	}
}

func TestAuthService_SignUp_MailFailureDoesNotFailRegistration(t *testing.T) {
	users := &mockUserRepo{
		CreateFn: func(u models.User) (int, error) { return 9, nil },
	}
	mail := &recordingMailer{err: errors.New("smtp: connection refused")}
	svc := newTestAuthService(users, newFakeSessionStore(), mail)

	id, err := svc.SignUp(context.Background(), RegisterInput{
		Username: "diana",
		Email:    "diana@gmail.com",
		Password: "somepassword",
	})
	if err != nil {
		t.Fatalf("SignUp should succeed despite mail failure, got: %v", err)
	}
	if id != 9 {
		t.Fatalf("expected id 9, got %d", id)
	}
	if len(users.createCalls) != 1 {
		t.Fatalf("expected the user to be created, got %d Create calls", len(users.createCalls))
	}
	if len(mail.sends) != 1 {
		t.Fatalf("expected the welcome send to have been attempted, got %d", len(mail.sends))
	}
}

func TestAuthService_SignUp_RequiredFields(t *testing.T) {
	users := &mockUserRepo{
		CreateFn: func(u models.User) (int, error) {
			t.Fatal("Create should not be called for invalid input")
			return 0, nil
		},
	}
	svc := newTestAuthService(users, newFakeSessionStore(), &recordingMailer{})

	_, err := svc.SignUp(context.Background(), RegisterInput{
		FirstName: "Botirbek",
		Email:     "botirbek@gmail.com",
	})
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}
	if fe["username"] != "This field is required." {
		t.Errorf("username message: got %q", fe["username"])
	}
	if fe["password"] != "This field is required." {
		t.Errorf("password message: got %q", fe["password"])
	}
	if len(users.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(users.createCalls))
	}
}

func TestAuthService_SignUp_InvalidEmail(t *testing.T) {
	users := &mockUserRepo{}
	svc := newTestAuthService(users, newFakeSessionStore(), &recordingMailer{})

	_, err := svc.SignUp(context.Background(), RegisterInput{
		Username: "Botirbekkkk",
		Email:    "botirbek",
		Password: "somepassword",
	})
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}
	if fe["email"] != "Enter a valid email address." {
		t.Errorf("email message: got %q", fe["email"])
	}
	if len(users.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(users.createCalls))
	}
}

func TestAuthService_SignUp_DuplicateUsername(t *testing.T) {
	users := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
	}
	svc := newTestAuthService(users, newFakeSessionStore(), &recordingMailer{})

	_, err := svc.SignUp(context.Background(), RegisterInput{
		Username: "nurzilola",
		Password: "nurzilola2004",
	})
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}
	if fe["username"] != "A user with that username already exists." {
		t.Errorf("username message: got %q", fe["username"])
	}
	if len(users.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(users.createCalls))
	}
}

// --- GenerateToken / ParseToken tests ---

func TestAuthService_GenerateToken_Success(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	users := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username != "diana" {
				t.Fatalf("expected username 'diana', got %q", username)
			}
			return &models.User{ID: 7, Username: "diana", PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(users, newFakeSessionStore(), &recordingMailer{})

	token, err := svc.GenerateToken(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	uid, err := svc.ParseToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 7 {
		t.Fatalf("expected user id 7 from token, got %d", uid)
	}
}

func TestAuthService_GenerateToken_UserNotFound(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, newFakeSessionStore(), &recordingMailer{})

	_, err := svc.GenerateToken(context.Background(), "ghost", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestAuthService_GenerateToken_InvalidPassword(t *testing.T) {
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	users := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "eve", PasswordHash: correctHash}, nil
		},
	}
	svc := newTestAuthService(users, newFakeSessionStore(), &recordingMailer{})

	_, err = svc.GenerateToken(context.Background(), "eve", "wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got: %v", err)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, newFakeSessionStore(), &recordingMailer{})
	if _, err := svc.ParseToken(context.Background(), "not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestAuthService_ParseToken_InvalidSignature(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, newFakeSessionStore(), &recordingMailer{})

	// Create a token signed with a different key.
	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "some-jti",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 5,
	})
	badToken, err := tk.SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(context.Background(), badToken); err == nil {
		t.Fatalf("expected signature verification error")
	}
}

// --- Logout tests ---

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	hash, err := hashPassword("nurzilola2004")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	users := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 3, Username: "nurzilola", PasswordHash: hash}, nil
		},
	}
	sessions := newFakeSessionStore()
	svc := newTestAuthService(users, sessions, &recordingMailer{})

	token, err := svc.GenerateToken(context.Background(), "nurzilola", "nurzilola2004")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	// Token works before sign-out.
	if _, err := svc.ParseToken(context.Background(), token); err != nil {
		t.Fatalf("ParseToken before logout: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(sessions.revoked) != 1 {
		t.Fatalf("expected 1 revoked session, got %d", len(sessions.revoked))
	}

	// And is rejected afterwards.
	_, err = svc.ParseToken(context.Background(), token)
	if !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked after logout, got: %v", err)
	}
}
