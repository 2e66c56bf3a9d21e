package memory

import "babyjournal/internal/domain/apperr"

var (
	ErrNotFound        = apperr.NotFound("memory not found")
	ErrFileRequired    = apperr.BadRequest("no file was uploaded")
	ErrUnsupportedType = apperr.BadRequest("file type not allowed: only JPEG, PNG, GIF images and MP4, MOV videos are accepted")
	ErrBadImage        = apperr.BadRequest("image could not be processed")
	ErrInvalidKind     = apperr.BadRequest("kind must be photo or video")
)
