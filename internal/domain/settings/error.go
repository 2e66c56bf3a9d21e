package settings

import "babyjournal/internal/domain/apperr"

var (
	ErrAdminOnly    = apperr.Forbidden("administrator access required")
	ErrSiteNotFound = apperr.Internal("site configuration is missing", nil)
)
