package backup

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"babyjournal/internal/app/server/api/http/httperr"
	"babyjournal/internal/app/server/api/http/middleware/access"
	domainAccess "babyjournal/internal/domain/access"
	"babyjournal/internal/domain/backup"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Exporter - то, что собирает архив журнала
type Exporter interface {
	Export(ctx context.Context, g domainAccess.Grant) (*backup.Archive, error)
}

type exportInput struct {
	JournalID string `path:"journalId" doc:"Идентификатор журнала"`
}

type Handler struct {
	exporter   Exporter
	errs       *httperr.Mapper
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(exporter Exporter, errs *httperr.Mapper, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		exporter:   exporter,
		errs:       errs,
		log:        log.With(slog.String("component", "backup_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.exportOp(), h.export)
}

func (h *Handler) exportOp() huma.Operation {
	return huma.Operation{
		OperationID: "backup-export",
		Method:      http.MethodPost,
		Path:        "/api/backups/{journalId}/export",
		Summary:     "Скачать резервную копию журнала",
		Description: "ZIP с data/*.json и медиафайлами журнала. Только владелец.",
		Tags:        []string{"backups"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
		Responses: map[string]*huma.Response{
			"200": {
				Description: "ZIP-архив",
				Content:     map[string]*huma.MediaType{"application/zip": {}},
			},
		},
	}
}

// export собирает архив до начала ответа, чтобы ошибки ушли обычным статусом
func (h *Handler) export(ctx context.Context, _ *exportInput) (*huma.StreamResponse, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	archive, err := h.exporter.Export(ctx, g)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}

	return &huma.StreamResponse{
		Body: func(hctx huma.Context) {
			defer archive.Close()

			hctx.SetHeader("Content-Type", "application/zip")
			hctx.SetHeader("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive.Name))
			hctx.SetHeader("Content-Length", strconv.FormatInt(archive.Size, 10))
			hctx.SetStatus(http.StatusOK)

			if _, err := archive.WriteTo(hctx.BodyWriter()); err != nil {
				h.log.Warn("backup stream interrupted",
					slog.String("journal_id", g.JournalID),
					slog.String("error", err.Error()),
				)
			}
		},
	}, nil
}
