// Package repository declares the storage contracts the services depend on.
// internal/repository/sqlite implements all of them on one *sqlite.DB.
package repository

import (
	"context"

	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/resequence"
)

// UserRepository is the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByUsername matches case-sensitively. Returns apperror.ErrNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

// Orderable is implemented by collections with a dense display order.
// Placements returns every row's (id, group, order); ApplyOrder writes a
// batch of placements in a single transaction, all or nothing.
type Orderable interface {
	Placements(ctx context.Context) ([]resequence.Item, error)
	ApplyOrder(ctx context.Context, items []resequence.Item) error
}

type ProjectRepository interface {
	Orderable
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
}

type SkillRepository interface {
	Orderable
	Create(ctx context.Context, skill *model.Skill) error
	GetByID(ctx context.Context, id string) (*model.Skill, error)
	// List returns skills ordered by category then order. An empty category means all.
	List(ctx context.Context, category string) ([]model.Skill, error)
	Update(ctx context.Context, skill *model.Skill) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
}

type TestimonialRepository interface {
	Orderable
	Create(ctx context.Context, t *model.Testimonial) error
	GetByID(ctx context.Context, id string) (*model.Testimonial, error)
	List(ctx context.Context, filter model.TestimonialFilter) ([]model.Testimonial, error)
	Update(ctx context.Context, t *model.Testimonial) error
	Delete(ctx context.Context, id string) error
	CountVisible(ctx context.Context) (int, error)
}

type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	// List returns messages newest first.
	List(ctx context.Context) ([]model.ContactMessage, error)
	SetFlags(ctx context.Context, id string, flags model.MessageFlags) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
}

type AboutRepository interface {
	// Get returns (nil, nil) when the singleton row has never been written.
	Get(ctx context.Context) (*model.AboutInfo, error)
	Upsert(ctx context.Context, info *model.AboutInfo) error
}

// Pinger reports whether storage is reachable. Used by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}
