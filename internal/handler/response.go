// Package handler translates HTTP requests into service calls and service
// results into JSON responses.
//
// Every error body has the same shape, {"error": "<message>"}, so the admin
// UI can show err.error without caring about the status code.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/sakif/portfolio-cms/internal/apperror"
)

// maxBodyBytes caps request bodies. The largest legitimate body is a
// project with a 5000-character description.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of responses that carry no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON sends data as JSON with the given status. Headers must be set
// before WriteHeader, and the body after it.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; logging is all that is left.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageResponse{Message: msg})
}

// writeError maps a domain error to its status code. Anything that is not
// an *apperror.AppError is a storage or programming failure: it is logged
// here, once, and the client only sees "Internal Server Error".
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict), errors.Is(err, apperror.ErrCapacity):
			status = http.StatusConflict
		case errors.Is(err, apperror.ErrRateLimited):
			status = http.StatusTooManyRequests
		}
		if status != http.StatusInternalServerError {
			writeJSON(w, status, ErrorResponse{Error: appErr.Message})
			return
		}
	}

	logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", http.StatusInternalServerError),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
}

// decodeJSON reads the request body into dst. Malformed JSON and values of
// the wrong type become validation errors naming the field, so a string
// where an array belongs reads "technologies must be an array" and 4.5
// where an integer belongs reads "rating must be an integer".
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return apperror.ValidationFailed("body", "Request body is required")
	case errors.As(err, &tooLarge):
		return apperror.ValidationFailed("body", "Request body is too large")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperror.ValidationFailed("body", "Invalid JSON body")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return apperror.ValidationFailed("body", "Request body must be a JSON object")
		}
		return apperror.ValidationFailed(field, fmt.Sprintf("%s must be %s", field, describeKind(typeErr.Type)))
	default:
		return apperror.ValidationFailed("body", "Invalid JSON body")
	}
}

// describeKind names a Go type the way a JSON client thinks of it.
func describeKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	default:
		return "an object"
	}
}

// NotFound replaces chi's plain-text 404 for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not Found"})
}

// MethodNotAllowed replaces chi's empty 405.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method Not Allowed"})
}
