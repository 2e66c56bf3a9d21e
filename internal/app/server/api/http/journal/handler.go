package journal

import (
	"context"

	"babyjournal/internal/app/server/api/http/httperr"
	"babyjournal/internal/app/server/api/http/middleware/access"
	"babyjournal/internal/app/server/api/http/middleware/auth"
	domainAccess "babyjournal/internal/domain/access"
	"babyjournal/internal/domain/journal"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service journal.Servicer
	sharing journal.SharingServicer
	errs    *httperr.Mapper
	log     *slog.Logger

	// authed - только личность; scoped - личность и роль в журнале из пути
	authed huma.Middlewares
	scoped huma.Middlewares
}

func NewHandler(
	service journal.Servicer,
	sharing journal.SharingServicer,
	errs *httperr.Mapper,
	log *slog.Logger,
	authed, scoped huma.Middlewares,
) *Handler {
	return &Handler{
		service: service,
		sharing: sharing,
		errs:    errs,
		log:     log.With(slog.String("component", "journal_handler")),
		authed:  authed,
		scoped:  scoped,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.activeOp(), h.active)
	huma.Register(api, h.setActiveOp(), h.setActive)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)

	huma.Register(api, h.shareOp(), h.share)
	huma.Register(api, h.listSharesOp(), h.listShares)
	huma.Register(api, h.unshareOp(), h.unshare)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	id, err := auth.Identity(ctx)
	if err != nil {
		return nil, err
	}

	views, err := h.service.ListMine(ctx, id.UserID)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &listOutput{Body: toResponses(views)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	id, err := auth.Identity(ctx)
	if err != nil {
		return nil, err
	}

	j, err := h.service.Create(ctx, id.UserID, id.SessionID, input.Body.toDomain())
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &output{Body: ToResponse(journal.View{Journal: j, Role: domainAccess.RoleOwner})}, nil
}

func (h *Handler) active(ctx context.Context, _ *struct{}) (*activeOutput, error) {
	id, err := auth.Identity(ctx)
	if err != nil {
		return nil, err
	}

	view, ok, err := h.service.Active(ctx, id.UserID, id.SessionID)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	if !ok {
		return &activeOutput{}, nil
	}
	resp := ToResponse(view)
	return &activeOutput{Body: activeResponse{Journal: &resp}}, nil
}

func (h *Handler) setActive(ctx context.Context, _ *journalPath) (*struct{}, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}
	id, err := auth.Identity(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.service.SetActive(ctx, g, id.SessionID); err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return nil, nil
}

func (h *Handler) get(ctx context.Context, _ *journalPath) (*output, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	view, err := h.service.Get(ctx, g)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &output{Body: ToResponse(view)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	view, err := h.service.Update(ctx, g, input.Body.toDomain())
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &output{Body: ToResponse(view)}, nil
}

func (h *Handler) delete(ctx context.Context, _ *journalPath) (*struct{}, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.service.Delete(ctx, g); err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return nil, nil
}

func (h *Handler) share(ctx context.Context, input *shareInput) (*shareOutput, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	s, err := h.sharing.Share(ctx, g, input.Body.toDomain())
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &shareOutput{Body: toShareResponse(s)}, nil
}

func (h *Handler) listShares(ctx context.Context, _ *journalPath) (*sharesOutput, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	shares, err := h.sharing.List(ctx, g)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}

	return &sharesOutput{Body: lo.Map(shares, func(s journal.Share, _ int) shareResponse { return toShareResponse(s) })}, nil
}

func (h *Handler) unshare(ctx context.Context, input *unshareInput) (*struct{}, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.sharing.Unshare(ctx, g, input.UserID); err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return nil, nil
}
