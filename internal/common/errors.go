// Package common defines shared constants and sentinel errors used across
// the EducaGestor server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Registration errors.
	ErrorNoRolesSpecified = errors.New("no roles specified")

	// Token errors (invalid signature or malformed structure).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// Authorization decisions.
	ErrInsufficientRole  = errors.New("insufficient role")
	ErrOwnershipMismatch = errors.New("ownership mismatch")

	// Login throttling.
	ErrTooManyRequests = errors.New("too many requests")
)
