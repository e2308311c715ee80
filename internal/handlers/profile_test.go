package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookreview/internal/models"
	"bookreview/internal/service"
)

func TestGetProfile(t *testing.T) {
	profile := &mockProfile{getUser: &models.User{
		ID:        7,
		Username:  "Botirbekkk",
		FirstName: "Botirbek",
		LastName:  "Ruzimboyev",
		Email:     "botirbek@gmail.com",
	}}
	auth := &mockAuth{parseID: 7}
	r := newTestRouter(&service.Service{Profile: profile, Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header = authHeader("tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if profile.lastGetID != 7 {
		t.Fatalf("expected lookup for user 7, got %d", profile.lastGetID)
	}

	var u models.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.Username != "Botirbekkk" || u.Email != "botirbek@gmail.com" {
		t.Fatalf("unexpected profile: %+v", u)
	}
}

func TestGetProfile_NeverExposesPasswordHash(t *testing.T) {
	profile := &mockProfile{getUser: &models.User{
		ID:           7,
		Username:     "Botirbekkk",
		PasswordHash: "$2a$10$secret",
	}}
	auth := &mockAuth{parseID: 7}
	r := newTestRouter(&service.Service{Profile: profile, Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header = authHeader("tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("secret")) {
		t.Fatalf("password hash leaked into response: %s", w.Body.String())
	}
}

func TestUpdateProfile_RedirectsToProfileView(t *testing.T) {
	profile := &mockProfile{updateUser: &models.User{ID: 7, Username: "Botirbekkk"}}
	auth := &mockAuth{parseID: 7}
	r := newTestRouter(&service.Service{Profile: profile, Authorization: auth})

	body := bytes.NewBufferString(`{"username":"Botirbekkk","last_name":"Doe","email":"btrbk@gmail.com"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/v1/profile" {
		t.Fatalf("Location: got %q", loc)
	}
	if profile.lastUpdateID != 7 {
		t.Fatalf("expected update for user 7, got %d", profile.lastUpdateID)
	}
	if profile.lastUpdate.LastName != "Doe" || profile.lastUpdate.Email != "btrbk@gmail.com" {
		t.Fatalf("unexpected input: %+v", profile.lastUpdate)
	}
}

func TestUpdateProfile_FieldErrors(t *testing.T) {
	profile := &mockProfile{updateErr: service.FieldErrors{
		"username": "A user with that username already exists.",
	}}
	auth := &mockAuth{parseID: 7}
	r := newTestRouter(&service.Service{Profile: profile, Authorization: auth})

	body := bytes.NewBufferString(`{"username":"nurzilola"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Errors["username"] != "A user with that username already exists." {
		t.Fatalf("username message: got %q", resp.Errors["username"])
	}
}

func TestUpdateProfile_RequiresLogin(t *testing.T) {
	r := newTestRouter(&service.Service{Profile: &mockProfile{}, Authorization: &mockAuth{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", bytes.NewBufferString(`{}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d", w.Code)
	}
}
