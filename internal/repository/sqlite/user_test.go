package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
)

// createTestUser creates a user and fails the test if it errors.
func createTestUser(t *testing.T, u *UserRepo, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplacehol",
		IsAdmin:      true,
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestUserCreate(t *testing.T) {
	u := newTestDB(t).Users()

	user := &model.User{Username: "admin", PasswordHash: "hash", IsAdmin: true}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	u := newTestDB(t).Users()
	createTestUser(t, u, "admin")

	err := u.Create(context.Background(), &model.User{Username: "admin", PasswordHash: "x"})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() duplicate error = %v, want ErrConflict", err)
	}
}

// =========================================================================
// LOOKUP TESTS
// =========================================================================

func TestUserGetByID(t *testing.T) {
	u := newTestDB(t).Users()
	created := createTestUser(t, u, "getbyid_user")

	found, err := u.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Username != "getbyid_user" {
		t.Errorf("Username = %q, want %q", found.Username, "getbyid_user")
	}
	if found.PasswordHash != created.PasswordHash {
		t.Error("GetByID() did not return the stored password hash")
	}
	if !found.IsAdmin {
		t.Error("IsAdmin = false, want true")
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	u := newTestDB(t).Users()

	_, err := u.GetByID(context.Background(), "nonexistent-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByUsername_IsCaseSensitive(t *testing.T) {
	u := newTestDB(t).Users()
	created := createTestUser(t, u, "Admin")

	found, err := u.GetByUsername(context.Background(), "Admin")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}

	_, err = u.GetByUsername(context.Background(), "admin")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByUsername(lowercase) error = %v, want ErrNotFound", err)
	}
}

func TestUserCount(t *testing.T) {
	u := newTestDB(t).Users()

	n, err := u.Count(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("Count() = %d, %v; want 0, nil", n, err)
	}

	createTestUser(t, u, "one")
	createTestUser(t, u, "two")

	n, err = u.Count(context.Background())
	if err != nil || n != 2 {
		t.Errorf("Count() = %d, %v; want 2, nil", n, err)
	}
}

// The hash must never reach a JSON body, even if a whole User is encoded.
func TestUserJSON_OmitsPasswordHash(t *testing.T) {
	u := newTestDB(t).Users()
	created := createTestUser(t, u, "admin")

	b, err := json.Marshal(created)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"passwordHash", "PasswordHash", "password_hash", "password"} {
		if _, ok := fields[key]; ok {
			t.Errorf("encoded user contains %q", key)
		}
	}
}
