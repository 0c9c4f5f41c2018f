// Package common defines shared constants and sentinel errors used across
// client and server layers of joinflow. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors.
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidOrganization = errors.New("invalid organization")

	// Account lifecycle errors.
	ErrAccountExists = errors.New("account already exists")
	ErrRateLimited   = errors.New("too many requests")

	// Link token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
