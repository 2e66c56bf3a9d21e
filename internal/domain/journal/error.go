package journal

import "babyjournal/internal/domain/apperr"

var (
	ErrNotFound        = apperr.NotFound("journal not found")
	ErrInviteeNotFound = apperr.NotFound("no user with this email")
	ErrShareWithSelf   = apperr.BadRequest("cannot share a journal with yourself")
	ErrUnshareSelf     = apperr.BadRequest("cannot remove your own access")
	ErrShareNotFound   = apperr.NotFound("user has no shared access to this journal")
)
