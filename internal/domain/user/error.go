package user

import "babyjournal/internal/domain/apperr"

var (
	ErrNotFound             = apperr.NotFound("user not found")
	ErrInvalidCredentials   = apperr.Unauthenticated("invalid credentials")
	ErrEmailTaken           = apperr.Conflict("email is already registered")
	ErrRegistrationDisabled = apperr.Forbidden("registration of new users is disabled")
)
