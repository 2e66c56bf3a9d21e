package user

import (
	"context"
	"net/http"
	"time"

	"babyjournal/internal/app/server/api/http/httperr"
	"babyjournal/internal/app/server/api/http/journal"
	"babyjournal/internal/app/server/api/http/middleware/auth"
	domainJournal "babyjournal/internal/domain/journal"
	"babyjournal/internal/domain/session"
	"babyjournal/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// CookieOptions - параметры cookie сессии
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

// Middlewares - наборы для публичных, защищенных и смешанных операций
type Middlewares struct {
	Public   huma.Middlewares
	Private  huma.Middlewares
	Optional huma.Middlewares
}

type Handler struct {
	service  user.Servicer
	session  session.Servicer
	journals domainJournal.Servicer
	cookie   CookieOptions
	errs     *httperr.Mapper
	log      *slog.Logger

	public   huma.Middlewares
	private  huma.Middlewares
	optional huma.Middlewares
}

func NewHandler(
	service user.Servicer,
	session session.Servicer,
	journals domainJournal.Servicer,
	cookie CookieOptions,
	errs *httperr.Mapper,
	log *slog.Logger,
	mws Middlewares,
) *Handler {
	return &Handler{
		service:  service,
		session:  session,
		journals: journals,
		cookie:   cookie,
		errs:     errs,
		log:      log.With(slog.String("component", "user_handler")),
		public:   mws.Public,
		private:  mws.Private,
		optional: mws.Optional,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.sessionOp(), h.current)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*authOutput, error) {
	u, err := h.service.Register(ctx, user.RegisterRequest{
		Name:     input.Body.Name,
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}

	return h.startSession(ctx, u)
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*authOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}

	return h.startSession(ctx, u)
}

func (h *Handler) startSession(ctx context.Context, u user.User) (*authOutput, error) {
	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}

	return &authOutput{
		SetCookie: h.sessionCookie(token, int(h.cookie.TTL.Seconds())),
		Body:      authResponse{User: toResponse(u), Token: token},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*logoutOutput, error) {
	id, err := auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.session.Revoke(ctx, id.SessionID); err != nil {
		return nil, h.errs.From(ctx, err)
	}

	return &logoutOutput{SetCookie: h.sessionCookie("", -1)}, nil
}

func (h *Handler) current(ctx context.Context, _ *struct{}) (*sessionOutput, error) {
	id, err := auth.Identity(ctx)
	if err != nil {
		return &sessionOutput{Body: sessionResponse{Authenticated: false}}, nil
	}

	u, err := h.service.Get(ctx, id.UserID)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	resp := sessionResponse{Authenticated: true, User: lo.ToPtr(toResponse(u))}

	view, ok, err := h.journals.Active(ctx, id.UserID, id.SessionID)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	if ok {
		resp.ActiveJournal = lo.ToPtr(journal.ToResponse(view))
	}

	return &sessionOutput{Body: resp}, nil
}

// sessionCookie: maxAge < 0 удаляет cookie
func (h *Handler) sessionCookie(token string, maxAge int) http.Cookie {
	return http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
