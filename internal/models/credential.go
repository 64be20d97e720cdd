package models

import "time"

// Credential is a captured session cookie for the remote platform. Credentials
// are immutable once stored; validity is only discovered by use.
type Credential struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Label     string    `json:"label"`
	Cookie    string    `json:"cookie"`
	CreatedAt time.Time `json:"created_at"`
}
