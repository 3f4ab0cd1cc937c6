package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bynderpress/internal/client/services"
	"github.com/dmitrijs2005/bynderpress/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// errLoginRequired is printed when a command needs a session.
var errLoginRequired = errors.New("please login first")

// restoreSession picks up the session saved by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	user, err := a.authService.Restore(ctx)
	if err != nil {
		if !errors.Is(err, services.ErrNoSession) {
			a.log.Warn(ctx, "could not restore session", "error", err)
		}
		return
	}
	a.userName = user
	a.printf("Restored session of %s\n", user)
}

// Login prompts for credentials and opens a session on the server.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		return err
	}

	a.userName = userName
	a.setMode(ModeOnline)
	a.printf("Logged in as %s\n", userName)
	return nil
}

// Logout ends the session on the server and forgets it locally.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	a.printf("Logged out\n")
	return nil
}
