package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
)

// contextKey is unexported so no other package can read or shadow these values.
type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "sessionToken"
)

// Authenticator resolves a session token into its user.
// service.AuthService implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Sessions binds the session store to HTTP: it reads and writes the cookie
// and attaches the resolved user to the request context.
type Sessions struct {
	authn  Authenticator
	cookie CookieConfig
	logger *slog.Logger
}

func NewSessions(authn Authenticator, cookie CookieConfig, logger *slog.Logger) *Sessions {
	return &Sessions{authn: authn, cookie: cookie, logger: logger}
}

// Attach resolves the session cookie, if any, and stores the user in the
// request context. It never rejects a request; RequireSession does that.
func (s *Sessions) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.Token(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), tokenKey, token)
		user, err := s.authn.Authenticate(ctx, token)
		switch {
		case err == nil:
			ctx = context.WithValue(ctx, userKey, user)
		case !errors.Is(err, apperror.ErrUnauthorized):
			s.logger.Error("resolving session",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession rejects requests that carry no valid session with 401.
// Missing, unknown and expired sessions get the same response.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the user attached by Attach.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}

// TokenFromContext returns the raw session token the request carried,
// valid or not.
func TokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}

// Token reads the session token from the request cookie.
func (s *Sessions) Token(r *http.Request) string {
	c, err := r.Cookie(s.cookie.Name)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetCookie writes the session cookie. The value is the opaque token only.
func (s *Sessions) SetCookie(w http.ResponseWriter, sess model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(s.cookie.TTL.Seconds()),
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie tells the browser to drop the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
