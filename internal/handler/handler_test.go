package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/linkstash/linkstash/internal/handler"
	"github.com/linkstash/linkstash/internal/handler/dto"
	"github.com/linkstash/linkstash/internal/middleware"
	"github.com/linkstash/linkstash/internal/repository"
	"github.com/linkstash/linkstash/internal/service"
)

const testSecret = "handler-test-secret"

// newTestRouter wires real services over the in-memory store, the way
// the server does, minus rate limiting.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mem := repository.NewMemory()

	userService := service.NewUserService(mem.Users(), testSecret, 0, nil)
	linkService := service.NewLinkService(mem.Links(), nil, nil)

	userHandler := handler.NewUserHandler(userService, logger)
	linkHandler := handler.NewLinkHandler(linkService, logger)

	authCfg := middleware.AuthConfig{Logger: logger, Secret: testSecret}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
		})
		r.Route("/links", func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Get("/", linkHandler.Search)
			r.Post("/", linkHandler.Create)
			r.Get("/{id}", linkHandler.Get)
			r.Put("/{id}", linkHandler.Update)
			r.Delete("/{id}", linkHandler.Delete)
		})
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, router http.Handler, email, password string) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/register", "",
		dto.RegisterRequest{Email: email, Password: password})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body %s", email, rec.Code, rec.Body.String())
	}
}

func login(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/login", "",
		dto.LoginRequest{Email: email, Password: password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body %s", email, rec.Code, rec.Body.String())
	}
	var resp dto.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	return resp.Token
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/register", "",
		dto.RegisterRequest{Email: "alice@test.com", Password: "pw1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Email != "alice@test.com" {
		t.Errorf("email = %q", resp.Email)
	}
	if resp.ID == "" {
		t.Error("expected assigned id")
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("pw1")) {
		t.Error("response must not echo the password")
	}

	// Same email again conflicts
	rec = doJSON(t, router, http.MethodPost, "/api/v1/users/register", "",
		dto.RegisterRequest{Email: "alice@test.com", Password: "pw2"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	tests := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{"missing email", dto.RegisterRequest{Password: "pw"}},
		{"invalid email", dto.RegisterRequest{Email: "not-an-email", Password: "pw"}},
		{"missing password", dto.RegisterRequest{Email: "ok@test.com"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/v1/users/register", "", tc.req)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	register(t, router, "bob@test.com", "correct")

	token := login(t, router, "bob@test.com", "correct")
	if token == "" {
		t.Fatal("expected token")
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/login", "",
		dto.LoginRequest{Email: "bob@test.com", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/users/login", "",
		dto.LoginRequest{Email: "nobody@test.com", Password: "whatever"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", rec.Code)
	}
}

func TestLinkEndpointsRequireAuth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/links", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLinkCRUD(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	register(t, router, "carol@test.com", "pw")
	token := login(t, router, "carol@test.com", "pw")

	// Create
	rec := doJSON(t, router, http.MethodPost, "/api/v1/links", token,
		dto.CreateLinkRequest{URL: "http://example.com/article", Title: "Article"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created dto.LinkResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Owner != "carol@test.com" {
		t.Errorf("owner = %q, must come from the token", created.Owner)
	}

	// Get
	rec = doJSON(t, router, http.MethodGet, "/api/v1/links/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// Update
	rec = doJSON(t, router, http.MethodPut, "/api/v1/links/"+created.ID, token,
		dto.UpdateLinkRequest{URL: "http://example.com/article", Title: "Renamed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated dto.LinkResponse
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Owner != "carol@test.com" {
		t.Errorf("owner changed to %q", updated.Owner)
	}

	// Delete
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/links/"+created.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/links/"+created.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestLinkOwnershipBoundary(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	register(t, router, "owner@test.com", "pw")
	register(t, router, "other@test.com", "pw")
	ownerToken := login(t, router, "owner@test.com", "pw")
	otherToken := login(t, router, "other@test.com", "pw")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/links", ownerToken,
		dto.CreateLinkRequest{URL: "http://example.com"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created dto.LinkResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Foreign reads are denied, not hidden
	rec = doJSON(t, router, http.MethodGet, "/api/v1/links/"+created.ID, otherToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("foreign get status = %d, want 401", rec.Code)
	}

	// Search shows nothing belonging to others
	rec = doJSON(t, router, http.MethodGet, "/api/v1/links", otherToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d", rec.Code)
	}
	var list dto.LinkListResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("foreign search returned %d links, want 0", len(list.Data))
	}
}

func TestLinkCreateValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	register(t, router, "val@test.com", "pw")
	token := login(t, router, "val@test.com", "pw")

	tests := []struct {
		name string
		url  string
	}{
		{"empty url", ""},
		{"relative url", "/just/a/path"},
		{"bad scheme", "ftp://example.com/file"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/v1/links", token,
				dto.CreateLinkRequest{URL: tc.url})
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
		})
	}
}
