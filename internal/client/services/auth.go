// Package services holds the bynderctl application services. AuthService
// owns the login session: it logs in against the server, keeps the token
// pair in the local session database and restores it on the next start.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bynderpress/internal/client/client"
	"github.com/dmitrijs2005/bynderpress/internal/client/repositories/session"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/logging"
)

// ErrNoSession is returned by Restore when nothing was saved for the server.
var ErrNoSession = errors.New("no saved session")

type AuthService interface {
	// Restore loads the saved session for the server and returns its user.
	Restore(ctx context.Context) (string, error)
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions session.Repository
	server   string
	log      logging.Logger
	now      func() time.Time

	username string
}

// NewAuthService binds the session of server to c. Tokens the client
// obtains later, including refreshed ones, are saved as they arrive.
func NewAuthService(c client.Client, sessions session.Repository, server string, log logging.Logger) AuthService {
	a := &authService{
		client:   c,
		sessions: sessions,
		server:   server,
		log:      log.With("module", "auth"),
		now:      time.Now,
	}
	c.OnTokens(a.persist)
	return a
}

func (a *authService) persist(t client.Tokens) {
	if a.username == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := a.sessions.Save(ctx, &session.Session{
		Server:       a.server,
		Username:     a.username,
		AccessToken:  t.Access,
		RefreshToken: t.Refresh,
		UpdatedAt:    a.now(),
	})
	if err != nil {
		a.log.Warn(ctx, "could not save session", "server", a.server, "error", err)
	}
}

func (a *authService) Restore(ctx context.Context) (string, error) {
	s, err := a.sessions.Get(ctx, a.server)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", ErrNoSession
		}
		return "", err
	}

	a.username = s.Username
	a.client.SetTokens(client.Tokens{Access: s.AccessToken, Refresh: s.RefreshToken})
	return s.Username, nil
}

// Login authenticates against the server. The password is only passed
// through; wiping it is up to the caller.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	prev := a.username
	a.username = username

	if _, err := a.client.Login(ctx, username, string(password)); err != nil {
		a.username = prev
		return fmt.Errorf("login failed: %w", err)
	}

	a.log.Info(ctx, "logged in", "username", username, "server", a.server)
	return nil
}

// Logout revokes the session on the server and always drops the local copy.
func (a *authService) Logout(ctx context.Context) error {
	remoteErr := a.client.Logout(ctx)
	a.username = ""

	if err := a.sessions.Delete(ctx, a.server); err != nil {
		return err
	}
	if remoteErr != nil {
		a.log.Warn(ctx, "server logout failed", "error", remoteErr)
	}
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
