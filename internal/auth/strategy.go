package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
)

// Credentials is what a login form submits.
type Credentials struct {
	Username string
	Password string
}

// Strategy turns credentials into a verified user.
//
// Implementations return apperror.InvalidCredentials for every kind of
// rejection and a plain error only when the backing store fails.
type Strategy interface {
	Verify(ctx context.Context, creds Credentials) (*model.User, error)
}

// UserFinder is the slice of the credential store a strategy needs.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// LocalStrategy checks a username and password against the credential store.
type LocalStrategy struct {
	users     UserFinder
	passwords *PasswordService
	// dummyHash is compared against when the username is unknown, so both
	// rejection paths spend one bcrypt comparison.
	dummyHash string
}

var _ Strategy = (*LocalStrategy)(nil)

func NewLocalStrategy(users UserFinder, passwords *PasswordService) (*LocalStrategy, error) {
	dummy, err := passwords.Hash("portfolio-cms-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("auth: preparing dummy hash: %w", err)
	}
	return &LocalStrategy{users: users, passwords: passwords, dummyHash: dummy}, nil
}

func (s *LocalStrategy) Verify(ctx context.Context, creds Credentials) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			_ = s.passwords.Verify(s.dummyHash, creds.Password)
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, creds.Password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, err
	}
	return user, nil
}
