// Package model defines the data structures used throughout the application.
package model

import "time"

// User is an admin account in the credential store.
//
// Usernames are matched case-sensitively. PasswordHash holds a bcrypt hash
// and is tagged json:"-" so it can never reach a response body, even if a
// handler serializes the whole struct by mistake.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}
