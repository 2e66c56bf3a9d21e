package auth

import (
	"context"
	"net/http"
	"strings"

	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// CookieName - cookie с токеном сессии для браузера
const CookieName = "session"

type Auth struct {
	api     huma.API
	session session.Servicer
	log     *slog.Logger
}

func New(api huma.API, session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		api:     api,
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

// Middleware пропускает только запросы с действующей сессией
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id, err := a.identify(ctx)
		if err != nil {
			status := http.StatusUnauthorized
			a.log.Debug("request rejected", slog.String("path", ctx.URL().Path), slog.String("reason", err.Error()))
			if apperr.KindOf(err) == apperr.KindInternal {
				a.log.Error("validate session", slog.String("error", err.Error()))
				status = http.StatusInternalServerError
			}
			_ = huma.WriteErr(a.api, ctx, status, http.StatusText(status))
			return
		}

		next(huma.WithContext(ctx, session.WithIdentity(ctx.Context(), id)))
	}
}

// Optional кладет личность в контекст, если она есть, и не отказывает без нее
func (a *Auth) Optional() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id, err := a.identify(ctx)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindInternal {
				a.log.Warn("validate session", slog.String("error", err.Error()))
			}
			next(ctx)
			return
		}
		next(huma.WithContext(ctx, session.WithIdentity(ctx.Context(), id)))
	}
}

func (a *Auth) identify(ctx huma.Context) (session.Identity, error) {
	return a.session.Validate(ctx.Context(), Token(ctx))
}

// Token берет токен из заголовка Authorization, затем из cookie
func Token(ctx huma.Context) string {
	if h := ctx.Header("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	// (*http.Request).Cookie пропускает битые пары, а не весь заголовок
	r := &http.Request{Header: http.Header{"Cookie": {ctx.Header("Cookie")}}}
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Identity - личность из контекста; для защищенных операций ее кладет Middleware
func Identity(ctx context.Context) (session.Identity, error) {
	id, ok := session.IdentityFrom(ctx)
	if !ok {
		return session.Identity{}, huma.Error401Unauthorized("Unauthorized")
	}
	return id, nil
}
