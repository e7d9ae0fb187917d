package services

import "errors"

// Service-level sentinel errors, mapped to API errors in the transport layer.
var (
	// ErrNoMatchingRoutes is the soft "empty result" signal: the current
	// selection matched zero routes. The session stays interactive and no
	// aggregation view is computed.
	ErrNoMatchingRoutes = errors.New("no routes match the current filter selection")

	// ErrUnknownView is returned for view names outside the four known ones.
	ErrUnknownView = errors.New("unknown view")
)
