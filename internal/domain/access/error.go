package access

import "babyjournal/internal/domain/apperr"

var (
	ErrMissingJournalID = apperr.BadRequest("journal id is required")
	ErrUnauthenticated  = apperr.Unauthenticated("authentication required")
	ErrAccessDenied     = apperr.Forbidden("access denied")
)
