package event

import (
	"context"

	"babyjournal/internal/app/server/api/http/httperr"
	"babyjournal/internal/app/server/api/http/middleware/access"
	"babyjournal/internal/domain/event"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    event.Servicer
	errs       *httperr.Mapper
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service event.Servicer, errs *httperr.Mapper, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		errs:       errs,
		log:        log.With(slog.String("component", "event_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	page, err := h.service.List(ctx, g, input.filter())
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &listOutput{Body: toPage(page)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	e, err := h.service.Create(ctx, g, input.Body.toDomain())
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &output{Body: toResponse(e)}, nil
}

func (h *Handler) get(ctx context.Context, input *itemPath) (*output, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	e, err := h.service.Get(ctx, g, input.ID)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &output{Body: toResponse(e)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	e, err := h.service.Update(ctx, g, input.ID, input.Body.toDomain())
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &output{Body: toResponse(e)}, nil
}

func (h *Handler) delete(ctx context.Context, input *itemPath) (*struct{}, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.service.Delete(ctx, g, input.ID); err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return nil, nil
}
