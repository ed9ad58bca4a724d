package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/repository"
	"github.com/sakif/portfolio-cms/internal/resequence"
)

type ProjectRepo struct {
	conn *sql.DB
}

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, title, description, image_url, github_url, live_url,
	technologies, featured, sort_order, created_at`

// Create inserts a project at the Order the caller chose.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	techs, err := encodeStrings(p.Technologies)
	if err != nil {
		return fmt.Errorf("sqlite: encoding technologies: %w", err)
	}

	p.ID = xid.New().String()
	p.CreatedAt = time.Now().UTC()

	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.ImageURL, p.GithubURL, p.LiveURL,
		techs, p.Featured, p.Order, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := scanProject(r.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("project", id)
		}
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}
	return p, nil
}

// List returns projects by display order. Creation time breaks ties so the
// result is stable even before the first reorder.
func (r *ProjectRepo) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if filter.Featured != nil {
		query += ` WHERE featured = ?`
		args = append(args, *filter.Featured)
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	// Initialize to an empty slice (not nil) so it encodes as [] not null.
	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating project rows: %w", err)
	}
	return projects, nil
}

// Update overwrites every mutable column. Order is left alone; it only
// changes through ApplyOrder.
func (r *ProjectRepo) Update(ctx context.Context, p *model.Project) error {
	techs, err := encodeStrings(p.Technologies)
	if err != nil {
		return fmt.Errorf("sqlite: encoding technologies: %w", err)
	}

	res, err := r.conn.ExecContext(ctx,
		`UPDATE projects
		 SET title = ?, description = ?, image_url = ?, github_url = ?, live_url = ?,
		     technologies = ?, featured = ?
		 WHERE id = ?`,
		p.Title, p.Description, p.ImageURL, p.GithubURL, p.LiveURL,
		techs, p.Featured, p.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s: %w", p.ID, err)
	}
	return checkAffected(res, apperror.NotFound("project", p.ID))
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting project %s: %w", id, err)
	}
	return checkAffected(res, apperror.NotFound("project", id))
}

// Placements returns every project in the single ordering group "".
func (r *ProjectRepo) Placements(ctx context.Context) ([]resequence.Item, error) {
	return placements(ctx, r.conn,
		`SELECT id, '', sort_order FROM projects ORDER BY sort_order ASC, created_at ASC`)
}

func (r *ProjectRepo) ApplyOrder(ctx context.Context, items []resequence.Item) error {
	return projectOrder.apply(ctx, r.conn, items)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(s rowScanner) (*model.Project, error) {
	var p model.Project
	var techs string
	err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.GithubURL, &p.LiveURL,
		&techs, &p.Featured, &p.Order, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Technologies, err = decodeStrings(techs); err != nil {
		return nil, fmt.Errorf("decoding technologies of project %s: %w", p.ID, err)
	}
	return &p, nil
}

// encodeStrings stores a string list as JSON text. nil is stored as "[]".
func encodeStrings(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeStrings is the inverse of encodeStrings. It always returns a non-nil slice.
func decodeStrings(text string) ([]string, error) {
	list := []string{}
	if strings.TrimSpace(text) == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
