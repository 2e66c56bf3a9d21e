// Package apperr - общая таксономия ошибок домена.
package apperr

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибку для транспортного слоя
type Kind string

const (
	KindInternal        Kind = "internal"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindBadRequest      Kind = "bad_request"
	KindConflict        Kind = "conflict"
	KindTooLarge        Kind = "payload_too_large"
)

type DomainError struct {
	Err     error
	Message string
	Code    Kind
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать sentinel-ошибки по коду и сообщению
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e == t || (e.Code == t.Code && e.Message == t.Message && t.Err == nil)
}

func New(code Kind, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func Newf(code Kind, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap сохраняет причину, но отдает наружу message
func Wrap(code Kind, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

func Unauthenticated(message string) *DomainError { return New(KindUnauthenticated, message) }
func Forbidden(message string) *DomainError       { return New(KindForbidden, message) }
func NotFound(message string) *DomainError        { return New(KindNotFound, message) }
func BadRequest(message string) *DomainError      { return New(KindBadRequest, message) }
func Conflict(message string) *DomainError        { return New(KindConflict, message) }

// Internal заворачивает неклассифицированную ошибку
func Internal(message string, err error) *DomainError {
	return Wrap(KindInternal, message, err)
}

// KindOf возвращает код первой DomainError в цепочке, иначе KindInternal
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return KindInternal
}

// Is проверяет, что err относится к указанному виду
func Is(err error, code Kind) bool {
	return err != nil && KindOf(err) == code
}
