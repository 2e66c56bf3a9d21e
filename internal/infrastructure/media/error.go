package media

import "errors"

var ErrTooLarge = errors.New("file exceeds size limit")
