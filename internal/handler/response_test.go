package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio-cms/internal/apperror"
)

func TestWriteError_StatusMapping(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperror.ValidationFailed("title", "Title is required"), http.StatusBadRequest, "Title is required"},
		{"unauthorized", apperror.Unauthorized(), http.StatusUnauthorized, "Unauthorized"},
		{"credentials", apperror.InvalidCredentials(), http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden", apperror.Forbidden("Admins only"), http.StatusForbidden, "Admins only"},
		{"not found", apperror.NotFound("project", "p1"), http.StatusNotFound, "project not found with id p1"},
		{"conflict", apperror.Conflict("user", "admin"), http.StatusConflict, "user conflict with id admin"},
		{"capacity", apperror.CapacityExceeded("Too many"), http.StatusConflict, "Too many"},
		{"rate limited", apperror.RateLimited(), http.StatusTooManyRequests, "Too many requests, please try again later."},
		{"wrapped", fmt.Errorf("service: %w", apperror.NotFound("skill", "s1")), http.StatusNotFound, "skill not found with id s1"},
		{"storage", errors.New("disk I/O error"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, httptest.NewRequest(http.MethodGet, "/api/x", nil), logger, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestWriteError_LogsOnlyServerErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	req := httptest.NewRequest(http.MethodDelete, "/api/projects/p1", nil)

	writeError(httptest.NewRecorder(), req, logger, apperror.NotFound("project", "p1"))
	assert.Empty(t, buf.String())

	writeError(httptest.NewRecorder(), req, logger, errors.New("database is locked"))
	out := buf.String()
	assert.Contains(t, out, "method=DELETE")
	assert.Contains(t, out, "path=/api/projects/p1")
	assert.Contains(t, out, "status=500")
	assert.Contains(t, out, "database is locked")
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title        *string   `json:"title"`
		Technologies *[]string `json:"technologies"`
		Rating       *int      `json:"rating"`
		Featured     *bool     `json:"featured"`
		Meta         *struct{} `json:"meta"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"title":"x","technologies":["Go"],"rating":5,"featured":true}`, ""},
		{"empty body", ``, "Request body is required"},
		{"malformed", `{"title":`, "Invalid JSON body"},
		{"syntax", `{title:1}`, "Invalid JSON body"},
		{"string for array", `{"technologies":"React"}`, "technologies must be an array"},
		{"fraction for integer", `{"rating":4.5}`, "rating must be an integer"},
		{"string for integer", `{"rating":"5"}`, "rating must be an integer"},
		{"number for boolean", `{"featured":1}`, "featured must be a boolean"},
		{"array for string", `{"title":["a"]}`, "title must be a string"},
		{"string for object", `{"meta":"x"}`, "meta must be an object"},
		{"not an object", `[1,2]`, "Request body must be a JSON object"},
		{"too large", `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`, "Request body is too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := decodeJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "x", *dst.Title)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestFallbackHandlers(t *testing.T) {
	tests := []struct {
		name    string
		h       http.HandlerFunc
		status  int
		message string
	}{
		{"not found", NotFound, http.StatusNotFound, "Not Found"},
		{"method not allowed", MethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.h(rr, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, rr.Body.String())
		})
	}
}
