package client

import (
	"context"

	"github.com/dmitrijs2005/bynderpress/internal/adminapi"
)

// Client is the admin API as seen by the CLI.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, username, password string) (Tokens, error)
	Logout(ctx context.Context) error

	GetSettings(ctx context.Context) (*adminapi.Settings, error)
	UpdateSettings(ctx context.Context, req *adminapi.UpdateSettingsRequest) (*adminapi.UpdateSettingsResponse, error)
	FetchDerivatives(ctx context.Context) ([]string, error)
	SyncUsage(ctx context.Context) (*adminapi.SyncResult, error)
	SyncStatus(ctx context.Context) (*adminapi.SyncStatusResponse, error)

	SetTokens(t Tokens)
	OnTokens(fn func(Tokens))
}

// Tokens is an access/refresh token pair.
type Tokens struct {
	Access  string
	Refresh string
}
