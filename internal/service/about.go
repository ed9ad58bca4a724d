package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/repository"
)

// AboutInput replaces the whole about block. Omitted text fields are stored
// empty and omitted counters as zero.
type AboutInput struct {
	Name              string `json:"name"`
	Title             string `json:"title"`
	Bio               string `json:"bio"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Location          string `json:"location"`
	AvatarURL         string `json:"avatarUrl"`
	ResumeURL         string `json:"resumeUrl"`
	GithubURL         string `json:"githubUrl"`
	LinkedinURL       string `json:"linkedinUrl"`
	TwitterURL        string `json:"twitterUrl"`
	WebsiteURL        string `json:"websiteUrl"`
	YearsExperience   int    `json:"yearsExperience"`
	ProjectsCompleted int    `json:"projectsCompleted"`
	HappyClients      int    `json:"happyClients"`
}

type AboutService struct {
	repo   repository.AboutRepository
	logger *slog.Logger
}

func NewAboutService(repo repository.AboutRepository, logger *slog.Logger) *AboutService {
	return &AboutService{repo: repo, logger: logger}
}

// Get returns nil when nothing has been saved yet.
func (s *AboutService) Get(ctx context.Context) (*model.AboutInfo, error) {
	return s.repo.Get(ctx)
}

// Save validates in and upserts the singleton. Concurrent saves are last
// write wins.
func (s *AboutService) Save(ctx context.Context, in AboutInput) (*model.AboutInfo, error) {
	info, err := validateAbout(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, info); err != nil {
		return nil, fmt.Errorf("saving about info: %w", err)
	}
	s.logger.Info("about info updated")
	return info, nil
}

func validateAbout(in AboutInput) (*model.AboutInfo, error) {
	info := &model.AboutInfo{}
	var err error

	if info.Name, err = text("name", "Name", in.Name, 1, MaxNameLength); err != nil {
		return nil, err
	}
	if info.Title, err = text("title", "Title", in.Title, 0, MaxTitleLength); err != nil {
		return nil, err
	}
	if info.Bio, err = text("bio", "Bio", in.Bio, 0, MaxBioLength); err != nil {
		return nil, err
	}
	if info.Email, err = email("email", in.Email, false); err != nil {
		return nil, err
	}
	if info.Phone, err = text("phone", "Phone", in.Phone, 0, MaxPhoneLength); err != nil {
		return nil, err
	}
	if info.Location, err = text("location", "Location", in.Location, 0, MaxLocationLength); err != nil {
		return nil, err
	}

	urls := []struct {
		field, label, value string
		dst                 *string
	}{
		{"avatarUrl", "Avatar URL", in.AvatarURL, &info.AvatarURL},
		{"resumeUrl", "Resume URL", in.ResumeURL, &info.ResumeURL},
		{"githubUrl", "GitHub URL", in.GithubURL, &info.GithubURL},
		{"linkedinUrl", "LinkedIn URL", in.LinkedinURL, &info.LinkedinURL},
		{"twitterUrl", "Twitter URL", in.TwitterURL, &info.TwitterURL},
		{"websiteUrl", "Website URL", in.WebsiteURL, &info.WebsiteURL},
	}
	for _, u := range urls {
		if *u.dst, err = optionalURL(u.field, u.label, u.value); err != nil {
			return nil, err
		}
	}

	if err := nonNegative("yearsExperience", "Years of experience", in.YearsExperience); err != nil {
		return nil, err
	}
	if err := nonNegative("projectsCompleted", "Projects completed", in.ProjectsCompleted); err != nil {
		return nil, err
	}
	if err := nonNegative("happyClients", "Happy clients", in.HappyClients); err != nil {
		return nil, err
	}
	info.YearsExperience = in.YearsExperience
	info.ProjectsCompleted = in.ProjectsCompleted
	info.HappyClients = in.HappyClients
	return info, nil
}
