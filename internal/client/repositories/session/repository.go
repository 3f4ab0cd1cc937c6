// Package session persists bynderctl login sessions in the local SQLite
// database, one row per server address.
package session

import (
	"context"
	"time"
)

// Session is what bynderctl remembers between runs.
type Session struct {
	Server       string
	Username     string
	AccessToken  string
	RefreshToken string
	UpdatedAt    time.Time
}

type Repository interface {
	// Get returns common.ErrorNotFound when server has no session.
	Get(ctx context.Context, server string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, server string) error
}
