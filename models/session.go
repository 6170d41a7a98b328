package models

import "time"

// Session marks a caller as having passed the shared-password check. Stored
// server-side keyed by ID; the client only ever holds the signed ID.
type Session struct {
	ID            string    `bson:"_id" json:"id"`
	Authenticated bool      `bson:"authenticated" json:"authenticated"`
	Role          string    `bson:"role" json:"role"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt     time.Time `bson:"expires_at" json:"expires_at"`
}

// Valid reports whether the session is authenticated and unexpired at now.
func (s Session) Valid(now time.Time) bool {
	return s.Authenticated && now.Before(s.ExpiresAt)
}
