// Package common defines shared constants, sentinel errors and small helpers
// used across the client and server layers of SurveyChain. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Submission outcomes. Everything except ErrPersistenceFailure and
	// ErrDigestUnavailable is an expected, caller-recoverable result.
	ErrDuplicate           = errors.New("response already submitted for this survey")
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInvalidRequest      = errors.New("invalid submission")
	ErrPersistenceFailure  = errors.New("persistence failure")
	ErrDigestUnavailable   = errors.New("digest implementation unavailable")
)
