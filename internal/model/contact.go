package model

import "time"

// Project types a visitor can pick on the contact form.
var ProjectTypes = []string{
	"web-development",
	"mobile-app",
	"3d-graphics",
	"consulting",
	"other",
}

// ContactMessage is a submission from the public contact form. After
// creation only the Read and Starred flags ever change.
type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	ProjectType string    `json:"projectType"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	Starred     bool      `json:"starred"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MessageFlags is a partial update of a message's mutable flags.
type MessageFlags struct {
	Read    *bool
	Starred *bool
}
