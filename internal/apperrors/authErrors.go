package apperrors

import "errors"

var (
	ErrNotAuthenticated  = errors.New("authentication required")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrProfileIncomplete = errors.New("profile must be completed first")
	ErrInvalidToken      = errors.New("invalid or expired token")
)
