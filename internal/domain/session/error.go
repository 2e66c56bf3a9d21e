package session

import "babyjournal/internal/domain/apperr"

var (
	ErrInvalidSession = apperr.Unauthenticated("invalid or expired session")
	ErrNotFound       = apperr.NotFound("session not found")
)
