package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/auth"
	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/repository"
)

// AuthService owns the session lifecycle:
//
//	Anonymous → (Login) → Authenticated → (Logout | expiry) → Anonymous
//
// It knows nothing about cookies; the handler moves tokens in and out of HTTP.
type AuthService struct {
	users     repository.UserRepository
	strategy  auth.Strategy
	sessions  *auth.SessionStore
	passwords *auth.PasswordService
	logger    *slog.Logger
}

var _ auth.Authenticator = (*AuthService)(nil)

func NewAuthService(
	users repository.UserRepository,
	strategy auth.Strategy,
	sessions *auth.SessionStore,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		strategy:  strategy,
		sessions:  sessions,
		passwords: passwords,
		logger:    logger,
	}
}

// Login verifies credentials and issues a new session. previousToken is the
// session the request already carried, if any; it is destroyed so a re-login
// replaces the old session instead of stacking a second one.
func (s *AuthService) Login(ctx context.Context, username, password, previousToken string) (*model.Session, *model.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, nil, apperror.ValidationFailed("username", "Username and password are required")
	}

	user, err := s.strategy.Verify(ctx, auth.Credentials{Username: username, Password: password})
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			s.logger.Warn("login rejected")
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("service/auth: verifying credentials: %w", err)
	}

	if previousToken != "" {
		s.sessions.Destroy(previousToken)
	}
	sess := s.sessions.Create(user.ID)

	s.logger.Info("admin logged in", slog.String("userID", user.ID))
	return &sess, user, nil
}

// Logout destroys the session. It succeeds whether or not the session exists.
func (s *AuthService) Logout(_ context.Context, token string) {
	if token != "" {
		s.sessions.Destroy(token)
	}
}

// Authenticate resolves a session token to its user. Every failure,
// whatever the cause, is apperror.Unauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	sess, ok := s.sessions.Get(token)
	if !ok {
		return nil, apperror.Unauthorized()
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// The account was removed after login; the session is worthless now.
			s.sessions.Destroy(token)
			return nil, apperror.Unauthorized()
		}
		return nil, fmt.Errorf("service/auth: loading session user: %w", err)
	}
	return user, nil
}

// EnsureAdmin creates the admin account if no user has that username yet.
// It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return false, fmt.Errorf("service/auth: looking up admin: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return false, fmt.Errorf("service/auth: hashing admin password: %w", err)
	}
	user := &model.User{Username: username, PasswordHash: hash, IsAdmin: true}
	if err := s.users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("service/auth: creating admin: %w", err)
	}

	s.logger.Info("admin user created", slog.String("username", username))
	return true, nil
}
