package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("too many attempts")
	// ErrRejected covers requests the server refused in the current state,
	// such as a fetch without a configured portal.
	ErrRejected = errors.New("rejected")
)
