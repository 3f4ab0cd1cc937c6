// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an administrator allowed to manage the Bynder settings.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
