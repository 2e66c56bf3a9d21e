// Package httperr переводит ошибки домена в статусы huma.
package httperr

import (
	"context"
	"errors"
	"net/http"

	"babyjournal/internal/domain/apperr"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const genericMessage = "unexpected error"

// Mapper знает режим окружения: в prod внутренние ошибки не раскрываются
type Mapper struct {
	prod bool
	log  *slog.Logger
}

func New(prod bool, log *slog.Logger) *Mapper {
	return &Mapper{
		prod: prod,
		log:  log.With(slog.String("component", "http_errors")),
	}
}

// From возвращает huma.StatusError для любой ошибки сервиса
func (m *Mapper) From(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var se huma.StatusError
	if errors.As(err, &se) {
		return se
	}

	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		m.log.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		if m.prod {
			return huma.Error500InternalServerError(genericMessage)
		}
		return huma.Error500InternalServerError(err.Error())
	}

	return huma.NewError(Status(kind), message(err))
}

// Status - HTTP-код для вида ошибки
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// message берет текст самой внешней DomainError, без префиксов обертки
func message(err error) string {
	var de *apperr.DomainError
	if errors.As(err, &de) {
		return de.Error()
	}
	return err.Error()
}
