package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/cricpix/internal/domain"
)

const (
	testEmail    = "test@example.com"
	testPassword = "secret"
	testSession  = "tok-a1b2c3"
)

// fakeBackend is a chi-routed stand-in for the chatbot API. Responses
// for /api/query are configured per test; auth endpoints implement the
// cookie-session contract for real.
type fakeBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	primary  domain.QueryResponse
	fallback domain.QueryResponse

	queryCalls         []domain.QueryRequest
	feedbackCalls      []domain.FeedbackRequest
	lastIdempotencyKey string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	backend := &fakeBackend{}

	r := chi.NewRouter()
	r.Post("/api/query", backend.handleQuery)
	r.Post("/api/login", backend.handleLogin)
	r.Post("/api/signup", backend.handleSignup)
	r.Post("/api/logout", backend.handleLogout)
	r.Post("/api/feedback", backend.handleFeedback)
	r.Get("/api/user", backend.handleUser)
	r.Get("/api/user_queries", backend.handleUserQueries)

	backend.server = httptest.NewServer(r)
	t.Cleanup(backend.server.Close)
	return backend
}

func (f *fakeBackend) URL() string {
	return f.server.URL
}

func (f *fakeBackend) setResponses(primary, fallback domain.QueryResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.primary = primary
	f.fallback = fallback
}

func (f *fakeBackend) authenticated(r *http.Request) bool {
	cookie, err := r.Cookie("session")
	return err == nil && cookie.Value == testSession
}

func (f *fakeBackend) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req domain.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.queryCalls = append(f.queryCalls, req)
	resp := f.primary
	if req.ForceSimilarity {
		resp = f.fallback
	}
	f.mu.Unlock()

	writeJSON(w, resp)
}

func (f *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Email != testEmail || req.Password != testPassword {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, domain.AuthResponse{Success: false, Message: "Invalid email or password"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "session", Value: testSession, HttpOnly: true})
	writeJSON(w, domain.AuthResponse{Success: true, Message: "Login successful"})
}

func (f *fakeBackend) handleSignup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, domain.AuthResponse{Success: true, Message: "Account created successfully"})
}

func (f *fakeBackend) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, domain.AuthResponse{Success: true})
}

func (f *fakeBackend) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if !f.authenticated(r) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, domain.FeedbackResponse{Success: false, Message: "Not logged in"})
		return
	}

	var req domain.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.feedbackCalls = append(f.feedbackCalls, req)
	f.lastIdempotencyKey = r.Header.Get("Idempotency-Key")
	f.mu.Unlock()

	writeJSON(w, domain.FeedbackResponse{Success: true})
}

func (f *fakeBackend) handleUser(w http.ResponseWriter, r *http.Request) {
	if !f.authenticated(r) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, domain.UserResponse{Success: false})
		return
	}
	writeJSON(w, domain.UserResponse{
		Success: true,
		User:    &domain.User{ID: 1, Name: "Test User", Email: testEmail},
	})
}

func (f *fakeBackend) handleUserQueries(w http.ResponseWriter, r *http.Request) {
	if !f.authenticated(r) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, domain.QueryHistoryResponse{Success: false, Message: "Not logged in"})
		return
	}
	writeJSON(w, domain.QueryHistoryResponse{
		Success: true,
		Queries: []domain.QueryHistoryEntry{
			{Query: "virat kohli cover drive", Timestamp: "2025-06-01 10:30"},
			{Query: "rohit sharma pull shot", Timestamp: "2025-05-28 18:02"},
		},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestAPIClient_PostForSession_CapturesCookie(t *testing.T) {
	backend := newFakeBackend(t)
	api := NewAPIClientWithConfig(backend.URL(), "")

	var resp domain.AuthResponse
	sessionCookie, err := api.PostForSession("/api/login", domain.LoginRequest{
		Email:    testEmail,
		Password: testPassword,
	}, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "session="+testSession, sessionCookie)
}

func TestAPIClient_PostForSession_NoCookieOnFailure(t *testing.T) {
	backend := newFakeBackend(t)
	api := NewAPIClientWithConfig(backend.URL(), "")

	var resp domain.AuthResponse
	_, err := api.PostForSession("/api/login", domain.LoginRequest{
		Email:    testEmail,
		Password: "wrong",
	}, &resp)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestAPIClient_SessionReplayedOnRequests(t *testing.T) {
	backend := newFakeBackend(t)
	api := NewAPIClientWithConfig(backend.URL(), "session="+testSession)

	var resp domain.UserResponse
	err := api.Get("/api/user", &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, testEmail, resp.User.Email)
}

func TestAPIClient_MissingSessionRejected(t *testing.T) {
	backend := newFakeBackend(t)
	api := NewAPIClientWithConfig(backend.URL(), "")

	var resp domain.UserResponse
	err := api.Get("/api/user", &resp)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestAPIClient_ErrorStatusIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("something broke"))
	}))
	defer server.Close()

	api := NewAPIClientWithConfig(server.URL, "")
	err := api.Get("/api/query", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "something broke")
}

func TestNewAPIClientWithCmd_EnvOverridesConfig(t *testing.T) {
	useTempConfig(t)
	require.NoError(t, SaveGlobalConfig(&GlobalConfig{APIURL: "http://from-config:5000"}))
	t.Setenv(envAPIURL, "http://from-env:5000")

	api, err := NewAPIClientWithCmd(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:5000", api.BaseURL())
}

func TestNewAPIClientWithCmd_DefaultWhenUnset(t *testing.T) {
	useTempConfig(t)
	t.Setenv(envAPIURL, "")

	api, err := NewAPIClientWithCmd(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultAPIURL, api.BaseURL())
	assert.False(t, api.HasSession())
}
