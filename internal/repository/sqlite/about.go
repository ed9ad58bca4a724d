package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/repository"
)

// AboutRepo stores the about_info singleton. The table's CHECK constraint
// pins the primary key to model.AboutInfoID, so a second row cannot exist.
type AboutRepo struct {
	conn *sql.DB
}

var _ repository.AboutRepository = (*AboutRepo)(nil)

const aboutColumns = `id, name, title, bio, email, phone, location, avatar_url, resume_url,
	github_url, linkedin_url, twitter_url, website_url,
	years_experience, projects_completed, happy_clients, updated_at`

// Get returns (nil, nil) until the first Upsert.
func (r *AboutRepo) Get(ctx context.Context) (*model.AboutInfo, error) {
	var a model.AboutInfo
	err := r.conn.QueryRowContext(ctx,
		`SELECT `+aboutColumns+` FROM about_info WHERE id = ?`, model.AboutInfoID,
	).Scan(
		&a.ID, &a.Name, &a.Title, &a.Bio, &a.Email, &a.Phone, &a.Location, &a.AvatarURL, &a.ResumeURL,
		&a.GithubURL, &a.LinkedinURL, &a.TwitterURL, &a.WebsiteURL,
		&a.YearsExperience, &a.ProjectsCompleted, &a.HappyClients, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: getting about info: %w", err)
	}
	return &a, nil
}

// Upsert replaces the singleton's content, creating the row on first use.
func (r *AboutRepo) Upsert(ctx context.Context, a *model.AboutInfo) error {
	a.ID = model.AboutInfoID
	a.UpdatedAt = time.Now().UTC()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO about_info (`+aboutColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     name = excluded.name,
		     title = excluded.title,
		     bio = excluded.bio,
		     email = excluded.email,
		     phone = excluded.phone,
		     location = excluded.location,
		     avatar_url = excluded.avatar_url,
		     resume_url = excluded.resume_url,
		     github_url = excluded.github_url,
		     linkedin_url = excluded.linkedin_url,
		     twitter_url = excluded.twitter_url,
		     website_url = excluded.website_url,
		     years_experience = excluded.years_experience,
		     projects_completed = excluded.projects_completed,
		     happy_clients = excluded.happy_clients,
		     updated_at = excluded.updated_at`,
		a.ID, a.Name, a.Title, a.Bio, a.Email, a.Phone, a.Location, a.AvatarURL, a.ResumeURL,
		a.GithubURL, a.LinkedinURL, a.TwitterURL, a.WebsiteURL,
		a.YearsExperience, a.ProjectsCompleted, a.HappyClients, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting about info: %w", err)
	}
	return nil
}
