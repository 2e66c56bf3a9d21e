package settings

import (
	"context"

	"babyjournal/internal/app/server/api/http/httperr"
	"babyjournal/internal/app/server/api/http/middleware/auth"
	"babyjournal/internal/domain/settings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    settings.Servicer
	errs       *httperr.Mapper
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service settings.Servicer, errs *httperr.Mapper, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		errs:       errs,
		log:        log.With(slog.String("component", "settings_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.getVisualOp(), h.getVisual)
	huma.Register(api, h.putVisualOp(), h.putVisual)
	huma.Register(api, h.getSiteOp(), h.getSite)
	huma.Register(api, h.putSiteOp(), h.putSite)
}

func (h *Handler) getVisual(ctx context.Context, _ *struct{}) (*visualOutput, error) {
	id, err := auth.Identity(ctx)
	if err != nil {
		return nil, err
	}

	c, err := h.service.Visual(ctx, id.UserID)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &visualOutput{Body: toVisualBody(c)}, nil
}

func (h *Handler) putVisual(ctx context.Context, input *visualInput) (*visualOutput, error) {
	id, err := auth.Identity(ctx)
	if err != nil {
		return nil, err
	}

	c, err := h.service.SaveVisual(ctx, id.UserID, input.Body.toDomain())
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &visualOutput{Body: toVisualBody(c)}, nil
}

func (h *Handler) getSite(ctx context.Context, _ *struct{}) (*siteOutput, error) {
	id, err := auth.Identity(ctx)
	if err != nil {
		return nil, err
	}

	c, err := h.service.Site(ctx, id.UserID)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &siteOutput{Body: toSiteResponse(c)}, nil
}

func (h *Handler) putSite(ctx context.Context, input *siteInput) (*siteOutput, error) {
	id, err := auth.Identity(ctx)
	if err != nil {
		return nil, err
	}

	c, err := h.service.UpdateSite(ctx, id.UserID, settings.SiteInput{
		SiteName:              input.Body.SiteName,
		AllowNewRegistrations: input.Body.AllowNewRegistrations,
	})
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &siteOutput{Body: toSiteResponse(c)}, nil
}
