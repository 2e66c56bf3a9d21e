package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Pinger - зависимость, доступность которой проверяется
type Pinger interface {
	Ping(ctx context.Context) error
}

// Components - что проверяет health: база (storage.Gateway) и каталог медиа (media.Store)
type Components struct {
	Storage Pinger
	Media   Pinger
}

type Handler struct {
	components Components
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(components Components, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		components: components,
		log:        log.With(slog.String("component", "health")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	report := Report{
		Status:  statusOK,
		Storage: h.check(ctx, "storage", h.components.Storage),
		Media:   h.check(ctx, "media", h.components.Media),
	}

	out := &Output{Status: http.StatusOK, Body: report}
	if report.Storage == componentDown || report.Media == componentDown {
		out.Status = http.StatusServiceUnavailable
		out.Body.Status = statusDegraded
	}
	return out, nil
}

func (h *Handler) check(ctx context.Context, name string, p Pinger) string {
	if err := p.Ping(ctx); err != nil {
		h.log.Error("ping failed", slog.String("target", name), slog.String("error", err.Error()))
		return componentDown
	}
	return componentUp
}
