// Package client is the bynderctl transport layer.
//
// GRPCClient talks to the bynderpress admin service (see package adminapi).
// It attaches the access token to every call and, when the server reports
// an expired token, refreshes it once with the stored refresh token and
// retries. Refreshed tokens are handed to the listener registered with
// OnTokens so the caller can persist them.
//
// Status codes map onto ErrUnauthorized, ErrUnavailable, ErrRateLimited and
// ErrRejected; match them with errors.Is. The server message is kept in the
// wrapped error text.
//
// InitDatabase opens the local SQLite session database and applies the
// embedded goose migrations.
package client
