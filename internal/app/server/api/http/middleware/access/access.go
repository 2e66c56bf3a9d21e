// Package access привязывает роль пользователя в журнале к запросу.
package access

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"babyjournal/internal/app/server/api/http/httperr"
	domain "babyjournal/internal/domain/access"
	"babyjournal/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/goccy/go-json"
	"golang.org/x/exp/slog"
)

const (
	PathParam  = "journalId"
	FieldName  = "journal_id"
	maxPeekLen = 1 << 20
)

type Access struct {
	api      huma.API
	resolver domain.Resolverer
	errs     *httperr.Mapper
	log      *slog.Logger
}

func New(api huma.API, resolver domain.Resolverer, errs *httperr.Mapper, log *slog.Logger) *Access {
	return &Access{
		api:      api,
		resolver: resolver,
		errs:     errs,
		log:      log.With(slog.String("component", "access_middleware")),
	}
}

// Middleware вычисляет Grant один раз; ставится после auth
func (a *Access) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		var requester int64
		if id, ok := session.IdentityFrom(ctx.Context()); ok {
			requester = id.UserID
		}

		grant, err := a.resolver.Resolve(ctx.Context(), requester, JournalID(ctx))
		if err != nil {
			a.writeErr(ctx, err)
			return
		}

		next(huma.WithContext(ctx, domain.WithGrant(ctx.Context(), grant)))
	}
}

func (a *Access) writeErr(ctx huma.Context, err error) {
	status, msg := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	var se huma.StatusError
	if errors.As(a.errs.From(ctx.Context(), err), &se) {
		status, msg = se.GetStatus(), se.Error()
	}
	_ = huma.WriteErr(a.api, ctx, status, msg)
}

// JournalID: путь, затем поле journal_id в JSON-теле, затем query - первое непустое
func JournalID(ctx huma.Context) string {
	if id := ctx.Param(PathParam); id != "" {
		return id
	}
	if id := bodyJournalID(ctx); id != "" {
		return id
	}
	return ctx.Query(FieldName)
}

// bodyJournalID читает тело и возвращает его обратно в запрос для handler'а
func bodyJournalID(ctx huma.Context) string {
	if !strings.HasPrefix(ctx.Header("Content-Type"), "application/json") {
		return ""
	}
	r, _ := humachi.Unwrap(ctx)
	if r == nil || r.Body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPeekLen))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(data), r.Body))

	var peek struct {
		JournalID string `json:"journal_id"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return ""
	}
	return peek.JournalID
}

// Grant - роль, положенная Middleware; без нее handler не выполняется
func Grant(ctx context.Context) (domain.Grant, error) {
	g, ok := domain.GrantFrom(ctx)
	if !ok {
		return domain.Grant{}, huma.Error403Forbidden("access denied")
	}
	return g, nil
}
