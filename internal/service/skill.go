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

// SkillInput carries create and update fields. CustomCategory replaces
// Category when Category is model.CategoryOther.
type SkillInput struct {
	Name           *string `json:"name"`
	Category       *string `json:"category"`
	CustomCategory *string `json:"customCategory"`
	Proficiency    *int    `json:"proficiency"`
	Icon           *string `json:"icon"`
}

// SkillService keeps skill order dense inside each category.
type SkillService struct {
	repo   repository.SkillRepository
	order  *sequencer
	logger *slog.Logger
}

func NewSkillService(repo repository.SkillRepository, logger *slog.Logger) *SkillService {
	return &SkillService{repo: repo, order: newSequencer(repo), logger: logger}
}

// List returns every skill, or only those in category when it is set.
func (s *SkillService) List(ctx context.Context, category string) ([]model.Skill, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

func (s *SkillService) Get(ctx context.Context, id string) (*model.Skill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SkillService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// Create appends the skill to the end of its category.
func (s *SkillService) Create(ctx context.Context, in SkillInput) (*model.Skill, error) {
	sk := &model.Skill{}
	if err := applySkillInput(sk, in, true); err != nil {
		return nil, err
	}

	err := s.order.locked(func() error {
		tail, err := s.order.tailOf(ctx, sk.Category)
		if err != nil {
			return err
		}
		sk.Order = tail
		return s.repo.Create(ctx, sk)
	})
	if err != nil {
		return nil, fmt.Errorf("creating skill: %w", err)
	}

	s.logger.Info("skill created", slog.String("id", sk.ID), slog.String("category", sk.Category))
	return sk, nil
}

// Update applies in. A category change moves the skill to the end of the
// new category and closes the gap in the old one.
func (s *SkillService) Update(ctx context.Context, id string, in SkillInput) (*model.Skill, error) {
	var sk *model.Skill
	err := s.order.locked(func() error {
		var err error
		if sk, err = s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		prevCategory := sk.Category
		if err := applySkillInput(sk, in, false); err != nil {
			return err
		}

		moved := sk.Category != prevCategory
		if moved {
			if sk.Order, err = s.order.tailOf(ctx, sk.Category); err != nil {
				return err
			}
		}
		if err := s.repo.Update(ctx, sk); err != nil {
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
	return sk, nil
}

func (s *SkillService) Delete(ctx context.Context, id string) error {
	return s.order.locked(func() error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		if err := s.order.densify(ctx); err != nil {
			return fmt.Errorf("compacting skill order: %w", err)
		}
		s.logger.Info("skill deleted", slog.String("id", id))
		return nil
	})
}

// Reorder moves skills inside or across categories. An entry with an empty
// Group stays in its current category.
func (s *SkillService) Reorder(ctx context.Context, entries []OrderEntry) error {
	moves := make([]resequence.Move, len(entries))
	for i, e := range entries {
		group := strings.TrimSpace(e.Group)
		if group != "" {
			var err error
			if group, err = text("category", "Category", group, 1, MaxCategoryLength); err != nil {
				return err
			}
		}
		moves[i] = resequence.Move{ID: e.ID, Group: group, Order: e.Order}
	}
	if err := s.order.reorder(ctx, moves); err != nil {
		return err
	}
	s.logger.Info("skills reordered", slog.Int("count", len(entries)))
	return nil
}

func applySkillInput(sk *model.Skill, in SkillInput, create bool) error {
	var err error

	if in.Name != nil || create {
		if sk.Name, err = text("name", "Name", derefString(in.Name, ""), 1, MaxNameLength); err != nil {
			return err
		}
	}
	if in.Category != nil || create {
		if sk.Category, err = skillCategory(derefString(in.Category, ""), derefString(in.CustomCategory, "")); err != nil {
			return err
		}
	}
	if in.Proficiency != nil || create {
		if in.Proficiency == nil {
			return apperror.ValidationFailed("proficiency", "Proficiency is required")
		}
		if err := intRange("proficiency", "Proficiency", *in.Proficiency, 1, 100); err != nil {
			return err
		}
		sk.Proficiency = *in.Proficiency
	}
	if in.Icon != nil {
		sk.Icon = strings.TrimSpace(*in.Icon)
	}
	return nil
}

// skillCategory resolves the stored category label. Picking "Other" with a
// custom label stores the custom label.
func skillCategory(category, custom string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", apperror.ValidationFailed("category", "Category is required")
	}
	if category == model.CategoryOther && strings.TrimSpace(custom) != "" {
		return text("customCategory", "Custom category", custom, 1, MaxCategoryLength)
	}
	return text("category", "Category", category, 1, MaxCategoryLength)
}
