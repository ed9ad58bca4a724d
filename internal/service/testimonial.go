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

// TestimonialInput carries create and update fields. IsVisible defaults to
// true on create.
type TestimonialInput struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Company   *string `json:"company"`
	Content   *string `json:"content"`
	Rating    *int    `json:"rating"`
	AvatarURL *string `json:"avatarUrl"`
	IsVisible *bool   `json:"isVisible"`
}

// TestimonialService enforces the visibility cap and keeps order dense
// inside the visible and hidden groups.
type TestimonialService struct {
	repo   repository.TestimonialRepository
	order  *sequencer
	max    int
	logger *slog.Logger
}

func NewTestimonialService(repo repository.TestimonialRepository, logger *slog.Logger) *TestimonialService {
	return &TestimonialService{
		repo:   repo,
		order:  newSequencer(repo),
		max:    model.MaxVisibleTestimonials,
		logger: logger,
	}
}

// List returns visible testimonials for the public site, or all of them.
func (s *TestimonialService) List(ctx context.Context, visibleOnly bool) ([]model.Testimonial, error) {
	return s.repo.List(ctx, model.TestimonialFilter{VisibleOnly: visibleOnly})
}

func (s *TestimonialService) Get(ctx context.Context, id string) (*model.Testimonial, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TestimonialService) Create(ctx context.Context, in TestimonialInput) (*model.Testimonial, error) {
	t := &model.Testimonial{IsVisible: true}
	if err := applyTestimonialInput(t, in, true); err != nil {
		return nil, err
	}

	err := s.order.locked(func() error {
		if t.IsVisible {
			if err := s.checkCapacity(ctx); err != nil {
				return err
			}
		}
		tail, err := s.order.tailOf(ctx, t.VisibilityGroup())
		if err != nil {
			return err
		}
		t.Order = tail
		return s.repo.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("testimonial created", slog.String("id", t.ID), slog.Bool("visible", t.IsVisible))
	return t, nil
}

// Update applies in. Making a hidden testimonial visible is refused with
// CapacityExceeded once the cap is reached, and nothing is written.
func (s *TestimonialService) Update(ctx context.Context, id string, in TestimonialInput) (*model.Testimonial, error) {
	var t *model.Testimonial
	err := s.order.locked(func() error {
		var err error
		if t, err = s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		wasVisible := t.IsVisible
		if err := applyTestimonialInput(t, in, false); err != nil {
			return err
		}

		if t.IsVisible && !wasVisible {
			if err := s.checkCapacity(ctx); err != nil {
				return err
			}
		}
		moved := t.IsVisible != wasVisible
		if moved {
			if t.Order, err = s.order.tailOf(ctx, t.VisibilityGroup()); err != nil {
				return err
			}
		}
		if err := s.repo.Update(ctx, t); err != nil {
			return err
		}
		if moved {
			return s.order.densify(ctx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	return s.order.locked(func() error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		if err := s.order.densify(ctx); err != nil {
			return fmt.Errorf("compacting testimonial order: %w", err)
		}
		s.logger.Info("testimonial deleted", slog.String("id", id))
		return nil
	})
}

// Reorder moves testimonials within their current visibility group.
func (s *TestimonialService) Reorder(ctx context.Context, entries []OrderEntry) error {
	moves := make([]resequence.Move, len(entries))
	for i, e := range entries {
		moves[i] = resequence.Move{ID: e.ID, Order: e.Order}
	}
	return s.order.reorder(ctx, moves)
}

func (s *TestimonialService) checkCapacity(ctx context.Context) error {
	n, err := s.repo.CountVisible(ctx)
	if err != nil {
		return fmt.Errorf("counting visible testimonials: %w", err)
	}
	if n >= s.max {
		return apperror.CapacityExceeded(fmt.Sprintf(
			"Maximum of %d visible testimonials reached. Hide another testimonial first.", s.max))
	}
	return nil
}

func applyTestimonialInput(t *model.Testimonial, in TestimonialInput, create bool) error {
	var err error

	if in.Name != nil || create {
		if t.Name, err = text("name", "Name", derefString(in.Name, ""), 1, MaxNameLength); err != nil {
			return err
		}
	}
	if in.Role != nil {
		if t.Role, err = text("role", "Role", *in.Role, 0, MaxRoleLength); err != nil {
			return err
		}
	}
	if in.Company != nil {
		if t.Company, err = text("company", "Company", *in.Company, 0, MaxRoleLength); err != nil {
			return err
		}
	}
	if in.Content != nil || create {
		if t.Content, err = text("content", "Content", derefString(in.Content, ""),
			MinTestimonialLength, MaxTestimonialLength); err != nil {
			return err
		}
	}
	if in.Rating != nil || create {
		if in.Rating == nil {
			return apperror.ValidationFailed("rating", "Rating is required")
		}
		if err := intRange("rating", "Rating", *in.Rating, 1, 5); err != nil {
			return err
		}
		t.Rating = *in.Rating
	}
	if in.AvatarURL != nil {
		if t.AvatarURL, err = optionalURL("avatarUrl", "Avatar URL", strings.TrimSpace(*in.AvatarURL)); err != nil {
			return err
		}
	}
	if in.IsVisible != nil {
		t.IsVisible = *in.IsVisible
	}
	return nil
}
