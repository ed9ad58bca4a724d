package model

import "time"

// Project is a portfolio entry.
//
// Technologies is an ordered list. The repository stores it as JSON text;
// callers always see a real slice.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	GithubURL    string    `json:"githubUrl,omitempty"`
	LiveURL      string    `json:"liveUrl,omitempty"`
	Technologies []string  `json:"technologies"`
	Featured     bool      `json:"featured"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProjectFilter narrows Project listings. A nil Featured means "any".
type ProjectFilter struct {
	Featured *bool
}
