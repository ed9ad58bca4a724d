package model

import "time"

// AboutInfoID is the fixed primary key of the about_info singleton row.
const AboutInfoID = "main"

// AboutInfo is the profile block shown on the about and contact sections.
// At most one row exists; writes are upserts.
type AboutInfo struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Title             string    `json:"title"`
	Bio               string    `json:"bio"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	Location          string    `json:"location,omitempty"`
	AvatarURL         string    `json:"avatarUrl,omitempty"`
	ResumeURL         string    `json:"resumeUrl,omitempty"`
	GithubURL         string    `json:"githubUrl,omitempty"`
	LinkedinURL       string    `json:"linkedinUrl,omitempty"`
	TwitterURL        string    `json:"twitterUrl,omitempty"`
	WebsiteURL        string    `json:"websiteUrl,omitempty"`
	YearsExperience   int       `json:"yearsExperience"`
	ProjectsCompleted int       `json:"projectsCompleted"`
	HappyClients      int       `json:"happyClients"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
