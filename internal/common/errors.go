// Package common defines shared constants and sentinel errors used across
// the Vitrine client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session errors.
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
	ErrInvalidToken   = errors.New("invalid token")
)
