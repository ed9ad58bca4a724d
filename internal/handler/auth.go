package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/auth"
	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/service"
)

// AuthHandler serves login, logout and the current-user lookup.
//
// The cookie only ever carries the opaque session token; the session itself
// lives in the server-side store behind service.AuthService.
type AuthHandler struct {
	svc      *service.AuthService
	sessions *auth.Sessions
	logger   *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, sessions *auth.Sessions, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse never includes the password hash: model.User tags it json:"-".
type LoginResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// HandleLogin verifies credentials and sets the session cookie.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	sess, user, err := h.svc.Login(r.Context(), req.Username, req.Password, h.sessions.Token(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.sessions.SetCookie(w, *sess)
	writeJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", User: user})
}

// HandleLogout destroys the session, if any, and clears the cookie.
// It always succeeds.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Context(), h.sessions.Token(r))
	h.sessions.ClearCookie(w)
	writeMessage(w, http.StatusOK, "Logout successful")
}

// HandleUser returns the logged-in user.
//
// HTTP: GET /api/auth/user
func (h *AuthHandler) HandleUser(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperror.Unauthorized())
		return
	}
	writeJSON(w, http.StatusOK, user)
}
