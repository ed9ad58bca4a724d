package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio-cms/internal/auth"
	"github.com/sakif/portfolio-cms/internal/handler"
	sqliteRepo "github.com/sakif/portfolio-cms/internal/repository/sqlite"
	"github.com/sakif/portfolio-cms/internal/service"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestDB(t *testing.T) *sqliteRepo.DB {
	t.Helper()
	db, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestProjectHandler(t *testing.T) {
	h := handler.NewProjectHandler(service.NewProjectService(newTestDB(t).Projects(), logger), logger)
	r := chi.NewRouter()
	r.Get("/api/projects", h.HandleList)
	r.Get("/api/projects/{id}", h.HandleGet)
	r.Post("/api/projects", h.HandleCreate)
	r.Put("/api/projects/{id}", h.HandleUpdate)

	t.Run("create", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, jsonRequest(http.MethodPost, "/api/projects",
			`{"title":"CMS","description":"Content API","technologies":["Go","SQLite"]}`))
		assert.Equal(t, http.StatusCreated, rr.Code)

		var body map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "CMS", body["title"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("create with missing title", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, jsonRequest(http.MethodPost, "/api/projects", `{"description":"x","technologies":["Go"]}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Title is required"}`, rr.Body.String())
	})

	t.Run("update with string technologies", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, jsonRequest(http.MethodPut, "/api/projects/whatever", `{"technologies":"Go"}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"technologies must be an array"}`, rr.Body.String())
	})

	t.Run("get missing", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/projects/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("list", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		var list []map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
		assert.Len(t, list, 1)
	})
}

func TestAboutHandler_GetBeforeSave(t *testing.T) {
	h := handler.NewAboutHandler(service.NewAboutService(newTestDB(t).About(), logger), logger)

	rr := httptest.NewRecorder()
	h.HandleGet(rr, httptest.NewRequest(http.MethodGet, "/api/about", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null\n", rr.Body.String())
}

func TestContactHandler_UpdateFlagsRequiresAFlag(t *testing.T) {
	h := handler.NewContactHandler(service.NewContactService(newTestDB(t).Contacts(), logger), logger)
	r := chi.NewRouter()
	r.Patch("/api/contact/messages/{id}", h.HandleUpdateFlags)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, jsonRequest(http.MethodPatch, "/api/contact/messages/m1", `{}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, jsonRequest(http.MethodPatch, "/api/contact/messages/m1", `{"read":"yes"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"read must be a boolean"}`, rr.Body.String())
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		state  string
	}{
		{"database up", nil, http.StatusOK, "ok"},
		{"database down", errors.New("unreachable"), http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(service.NewHealthService(fakePinger{tt.err}, 0))
			rr := httptest.NewRecorder()
			h.HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, tt.status, rr.Code)
			var body map[string]any
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.state, body["status"])
		})
	}
}

func newAuthHandler(t *testing.T) (*handler.AuthHandler, *auth.Sessions) {
	t.Helper()
	db := newTestDB(t)
	passwords := auth.NewPasswordService(4)
	strategy, err := auth.NewLocalStrategy(db.Users(), passwords)
	require.NoError(t, err)
	svc := service.NewAuthService(db.Users(), strategy, auth.NewSessionStore(time.Hour), passwords, logger)
	_, err = svc.EnsureAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	sessions := auth.NewSessions(svc, auth.CookieConfig{Name: "sid", TTL: time.Hour}, logger)
	return handler.NewAuthHandler(svc, sessions, logger), sessions
}

func TestAuthHandler_LoginThenUser(t *testing.T) {
	h, sessions := newAuthHandler(t)

	rr := httptest.NewRecorder()
	h.HandleLogin(rr, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"admin123"}`))
	require.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	sessions.Attach(http.HandlerFunc(h.HandleUser)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var user map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&user))
	assert.Equal(t, "admin", user["username"])
}

func TestAuthHandler_UserWithoutSession(t *testing.T) {
	h, _ := newAuthHandler(t)
	rr := httptest.NewRecorder()
	h.HandleUser(rr, httptest.NewRequest(http.MethodGet, "/api/auth/user", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	h, _ := newAuthHandler(t)
	rr := httptest.NewRecorder()
	h.HandleLogout(rr, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
