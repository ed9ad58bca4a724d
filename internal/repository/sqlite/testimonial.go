package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/repository"
	"github.com/sakif/portfolio-cms/internal/resequence"
)

type TestimonialRepo struct {
	conn *sql.DB
}

var _ repository.TestimonialRepository = (*TestimonialRepo)(nil)

const testimonialColumns = `id, name, role, company, content, rating, avatar_url,
	is_visible, sort_order, created_at`

func (r *TestimonialRepo) Create(ctx context.Context, t *model.Testimonial) error {
	t.ID = xid.New().String()
	t.CreatedAt = time.Now().UTC()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO testimonials (`+testimonialColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Role, t.Company, t.Content, t.Rating, t.AvatarURL,
		t.IsVisible, t.Order, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting testimonial: %w", err)
	}
	return nil
}

func (r *TestimonialRepo) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	t, err := scanTestimonial(r.conn.QueryRowContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("testimonial", id)
		}
		return nil, fmt.Errorf("sqlite: getting testimonial %s: %w", id, err)
	}
	return t, nil
}

// List returns visible testimonials first, each group in display order.
func (r *TestimonialRepo) List(ctx context.Context, filter model.TestimonialFilter) ([]model.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if filter.VisibleOnly {
		query += ` WHERE is_visible = 1`
	}
	query += ` ORDER BY is_visible DESC, sort_order ASC, created_at ASC`

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing testimonials: %w", err)
	}
	defer rows.Close()

	list := []model.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning testimonial row: %w", err)
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating testimonial rows: %w", err)
	}
	return list, nil
}

// Update writes every mutable column. Visibility and order travel together
// because flipping visibility moves the testimonial between groups.
func (r *TestimonialRepo) Update(ctx context.Context, t *model.Testimonial) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE testimonials
		 SET name = ?, role = ?, company = ?, content = ?, rating = ?, avatar_url = ?,
		     is_visible = ?, sort_order = ?
		 WHERE id = ?`,
		t.Name, t.Role, t.Company, t.Content, t.Rating, t.AvatarURL,
		t.IsVisible, t.Order, t.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating testimonial %s: %w", t.ID, err)
	}
	return checkAffected(res, apperror.NotFound("testimonial", t.ID))
}

func (r *TestimonialRepo) Delete(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting testimonial %s: %w", id, err)
	}
	return checkAffected(res, apperror.NotFound("testimonial", id))
}

func (r *TestimonialRepo) CountVisible(ctx context.Context) (int, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM testimonials WHERE is_visible = 1`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting visible testimonials: %w", err)
	}
	return n, nil
}

// Placements groups testimonials into "visible" and "hidden".
func (r *TestimonialRepo) Placements(ctx context.Context) ([]resequence.Item, error) {
	return placements(ctx, r.conn,
		`SELECT id, CASE WHEN is_visible = 1 THEN ? ELSE ? END, sort_order
		 FROM testimonials ORDER BY is_visible DESC, sort_order ASC, created_at ASC`,
		groupVisible, groupHidden)
}

func (r *TestimonialRepo) ApplyOrder(ctx context.Context, items []resequence.Item) error {
	return testimonialOrder.apply(ctx, r.conn, items)
}

func scanTestimonial(s rowScanner) (*model.Testimonial, error) {
	var t model.Testimonial
	err := s.Scan(&t.ID, &t.Name, &t.Role, &t.Company, &t.Content, &t.Rating, &t.AvatarURL,
		&t.IsVisible, &t.Order, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
