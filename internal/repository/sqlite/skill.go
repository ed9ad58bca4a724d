package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/repository"
	"github.com/sakif/portfolio-cms/internal/resequence"
)

type SkillRepo struct {
	conn *sql.DB
}

var _ repository.SkillRepository = (*SkillRepo)(nil)

const skillColumns = `id, name, category, proficiency, icon, sort_order`

func (r *SkillRepo) Create(ctx context.Context, s *model.Skill) error {
	s.ID = xid.New().String()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO skills (`+skillColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Category, s.Proficiency, s.Icon, s.Order,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting skill: %w", err)
	}
	return nil
}

func (r *SkillRepo) GetByID(ctx context.Context, id string) (*model.Skill, error) {
	s, err := scanSkill(r.conn.QueryRowContext(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("skill", id)
		}
		return nil, fmt.Errorf("sqlite: getting skill %s: %w", id, err)
	}
	return s, nil
}

// List returns skills grouped by category, each group in display order.
func (r *SkillRepo) List(ctx context.Context, category string) ([]model.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY category ASC, sort_order ASC, rowid ASC`

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing skills: %w", err)
	}
	defer rows.Close()

	skills := []model.Skill{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning skill row: %w", err)
		}
		skills = append(skills, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating skill rows: %w", err)
	}
	return skills, nil
}

// Update writes every column including category and order, since a
// category change moves the skill to the end of its new group.
func (r *SkillRepo) Update(ctx context.Context, s *model.Skill) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE skills SET name = ?, category = ?, proficiency = ?, icon = ?, sort_order = ?
		 WHERE id = ?`,
		s.Name, s.Category, s.Proficiency, s.Icon, s.Order, s.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating skill %s: %w", s.ID, err)
	}
	return checkAffected(res, apperror.NotFound("skill", s.ID))
}

func (r *SkillRepo) Delete(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting skill %s: %w", id, err)
	}
	return checkAffected(res, apperror.NotFound("skill", id))
}

// Categories returns the distinct categories that currently hold skills.
func (r *SkillRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.conn.QueryContext(ctx, `SELECT DISTINCT category FROM skills ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing skill categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating categories: %w", err)
	}
	return categories, nil
}

// Placements groups skills by category.
func (r *SkillRepo) Placements(ctx context.Context) ([]resequence.Item, error) {
	return placements(ctx, r.conn,
		`SELECT id, category, sort_order FROM skills ORDER BY category ASC, sort_order ASC, rowid ASC`)
}

func (r *SkillRepo) ApplyOrder(ctx context.Context, items []resequence.Item) error {
	return skillOrder.apply(ctx, r.conn, items)
}

func scanSkill(s rowScanner) (*model.Skill, error) {
	var sk model.Skill
	if err := s.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Proficiency, &sk.Icon, &sk.Order); err != nil {
		return nil, err
	}
	return &sk, nil
}
