package handlers

import (
	"context"
	"net/http"

	"bookreview/internal/models"
	"bookreview/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID    int
	signUpErr   error
	genToken    string
	genTokenErr error
	parseID     int
	parseErr    error
	logoutErr   error

	lastSignUpInput service.RegisterInput
	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
	lastLogoutToken string
}

func (m *mockAuth) SignUp(_ context.Context, in service.RegisterInput) (int, error) {
	m.lastSignUpInput = in
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(_ context.Context, token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) Logout(_ context.Context, token string) error {
	m.lastLogoutToken = token
	return m.logoutErr
}

type mockCatalog struct {
	listPage   service.BookPage
	listErr    error
	getBook    *models.Book
	getErr     error
	addID      int
	addErr     error
	lastFilter service.BookFilter
	lastGetID  int
	lastAdd    service.BookInput
}

func (m *mockCatalog) ListBooks(_ context.Context, f service.BookFilter) (service.BookPage, error) {
	m.lastFilter = f
	return m.listPage, m.listErr
}
func (m *mockCatalog) GetBook(_ context.Context, id int) (*models.Book, error) {
	m.lastGetID = id
	return m.getBook, m.getErr
}
func (m *mockCatalog) AddBook(_ context.Context, in service.BookInput) (int, error) {
	m.lastAdd = in
	return m.addID, m.addErr
}

type mockReviews struct {
	listResp       []models.Review
	listErr        error
	addID          int
	addErr         error
	highlightsPage service.ReviewPage
	highlightsErr  error

	lastListBookID int
	lastAdd        service.ReviewInput
	lastPage       service.PageParams
	addCalls       int
}

func (m *mockReviews) ListForBook(_ context.Context, bookID int) ([]models.Review, error) {
	m.lastListBookID = bookID
	return m.listResp, m.listErr
}
func (m *mockReviews) Add(_ context.Context, in service.ReviewInput) (int, error) {
	m.addCalls++
	m.lastAdd = in
	return m.addID, m.addErr
}
func (m *mockReviews) Highlights(_ context.Context, p service.PageParams) (service.ReviewPage, error) {
	m.lastPage = p
	return m.highlightsPage, m.highlightsErr
}

type mockProfile struct {
	getUser    *models.User
	getErr     error
	updateUser *models.User
	updateErr  error

	lastGetID    int
	lastUpdateID int
	lastUpdate   service.ProfileInput
}

func (m *mockProfile) Get(_ context.Context, userID int) (*models.User, error) {
	m.lastGetID = userID
	return m.getUser, m.getErr
}
func (m *mockProfile) Update(_ context.Context, userID int, in service.ProfileInput) (*models.User, error) {
	m.lastUpdateID = userID
	m.lastUpdate = in
	return m.updateUser, m.updateErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
