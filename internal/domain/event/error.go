package event

import "babyjournal/internal/domain/apperr"

var (
	ErrNotFound      = apperr.NotFound("event not found")
	ErrInvalidFilter = apperr.BadRequest("date_from and date_to must be YYYY-MM-DD")
)
