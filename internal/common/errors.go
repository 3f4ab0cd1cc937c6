// Package common defines shared constants and sentinel errors used across
// the server and the bynderctl client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Integration errors. ErrNotConfigured short-circuits any call to the
	// portal when the domain or the permanent token is missing.
	ErrNotConfigured = errors.New("domain or permanent token not configured")
	ErrFetchFailed   = errors.New("could not fetch derivatives")
	ErrSyncFailed    = errors.New("usage sync request failed")

	// Editor errors.
	ErrAssetNotPublic   = errors.New("asset is not marked as public")
	ErrUnsupportedAsset = errors.New("unsupported asset type")
	ErrNoAssetSelected  = errors.New("no asset selected")
	ErrNotBynderGallery = errors.New("block is not a bynder gallery")
	ErrMalformedMarkup  = errors.New("malformed block markup")

	// Validation errors.
	ErrorValidation = errors.New("validation error")
)
