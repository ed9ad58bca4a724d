package model

import "time"

// Session is the server-held proof of a login. The browser only ever sees
// ID, inside an HttpOnly cookie; UserID is a lookup key, not an ownership link.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its deadline at t.
func (s Session) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
