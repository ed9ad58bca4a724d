// Package service holds the business rules: field validation, dense display
// ordering, and the testimonial visibility cap. Handlers translate HTTP to
// these calls; repositories only store what they are given.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/repository"
	"github.com/sakif/portfolio-cms/internal/resequence"
)

// ProjectInput carries create and update fields. On update, nil fields keep
// their stored value.
type ProjectInput struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	ImageURL     *string   `json:"imageUrl"`
	GithubURL    *string   `json:"githubUrl"`
	LiveURL      *string   `json:"liveUrl"`
	Technologies *[]string `json:"technologies"`
	Featured     *bool     `json:"featured"`
}

// OrderEntry is one element of a reorder request. Group is only used by
// collections with more than one group.
type OrderEntry struct {
	ID    string
	Group string
	Order *int
}

type ProjectService struct {
	repo   repository.ProjectRepository
	order  *sequencer
	logger *slog.Logger
}

func NewProjectService(repo repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{repo: repo, order: newSequencer(repo), logger: logger}
}

func (s *ProjectService) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates in and appends the project to the end of the list.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*model.Project, error) {
	p := &model.Project{}
	if err := applyProjectInput(p, in, true); err != nil {
		return nil, err
	}

	err := s.order.locked(func() error {
		tail, err := s.order.tailOf(ctx, "")
		if err != nil {
			return err
		}
		p.Order = tail
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", slog.String("id", p.ID))
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput) (*model.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProjectInput(p, in, false); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return p, nil
}

// Delete removes the project and closes the gap it leaves in the order.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.order.locked(func() error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		if err := s.order.densify(ctx); err != nil {
			return fmt.Errorf("compacting project order: %w", err)
		}
		s.logger.Info("project deleted", slog.String("id", id))
		return nil
	})
}

// Reorder moves projects to the requested positions in a single list.
func (s *ProjectService) Reorder(ctx context.Context, entries []OrderEntry) error {
	moves := make([]resequence.Move, len(entries))
	for i, e := range entries {
		moves[i] = resequence.Move{ID: e.ID, Order: e.Order}
	}
	return s.order.reorder(ctx, moves)
}

// applyProjectInput validates in and copies it onto p. With create set,
// title, description and technologies are mandatory.
func applyProjectInput(p *model.Project, in ProjectInput, create bool) error {
	var err error

	if in.Title != nil || create {
		if p.Title, err = text("title", "Title", derefString(in.Title, ""), 1, MaxTitleLength); err != nil {
			return err
		}
	}
	if in.Description != nil || create {
		if p.Description, err = text("description", "Description", derefString(in.Description, ""), 1, MaxDescriptionLength); err != nil {
			return err
		}
	}
	if in.Technologies != nil || create {
		var techs []string
		if in.Technologies != nil {
			techs = *in.Technologies
		}
		if p.Technologies, err = technologies(techs); err != nil {
			return err
		}
	}
	if in.ImageURL != nil {
		if p.ImageURL, err = optionalURL("imageUrl", "Image URL", *in.ImageURL); err != nil {
			return err
		}
	}
	if in.GithubURL != nil {
		if p.GithubURL, err = optionalURL("githubUrl", "GitHub URL", *in.GithubURL); err != nil {
			return err
		}
	}
	if in.LiveURL != nil {
		if p.LiveURL, err = optionalURL("liveUrl", "Live URL", *in.LiveURL); err != nil {
			return err
		}
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	return nil
}

// technologies trims each entry and requires at least one.
func technologies(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, apperror.ValidationFailed("technologies", "At least one technology is required")
	}
	if len(in) > MaxTechnologies {
		return nil, apperror.ValidationFailed("technologies",
			fmt.Sprintf("No more than %d technologies are allowed", MaxTechnologies))
	}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, apperror.ValidationFailed("technologies", "Technologies must not contain empty entries")
		}
		if len([]rune(t)) > MaxTechnologyLength {
			return nil, apperror.ValidationFailed("technologies",
				fmt.Sprintf("Each technology must be %d characters or less", MaxTechnologyLength))
		}
		out = append(out, t)
	}
	return out, nil
}
