// Package common contains shared constants and sentinel errors used across
// the field-ops client and server. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")

	// Local persistence errors.
	ErrStorageExhausted = errors.New("local storage exhausted")

	// Sync errors. NetworkUnavailable entries stay queued for the next
	// attempt; RemoteRejected entries are terminal and must not be retried.
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrRemoteRejected     = errors.New("rejected by remote store")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Root-session errors. Both fail closed: a privileged call without a
	// live elevated claim is denied, never defaulted to permissive.
	ErrAuthorizationDenied  = errors.New("authorization denied")
	ErrAuthorizationExpired = errors.New("authorization expired")

	// Client-side PIN lockout.
	ErrLockedOut = errors.New("too many failed attempts")

	// Banned agents cannot authenticate.
	ErrAgentBanned = errors.New("agent is banned")
)
