package memory

import (
	"context"
	"fmt"

	"babyjournal/internal/app/server/api/http/httperr"
	"babyjournal/internal/app/server/api/http/middleware/access"
	"babyjournal/internal/domain/memory"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    memory.Servicer
	maxBytes   int64
	errs       *httperr.Mapper
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service memory.Servicer, maxBytes int64, errs *httperr.Mapper, log *slog.Logger, middleware huma.Middlewares) *Handler {
	if maxBytes <= 0 {
		maxBytes = memory.DefaultMaxBytes
	}
	return &Handler{
		service:    service,
		maxBytes:   maxBytes,
		errs:       errs,
		log:        log.With(slog.String("component", "memory_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.uploadOp(), h.upload)
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

func (h *Handler) upload(ctx context.Context, input *uploadInput) (*output, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := input.RawBody.RemoveAll(); err != nil {
			h.log.Warn("remove multipart temp files", slog.String("error", err.Error()))
		}
	}()

	var up memory.Upload
	if files := input.RawBody.File[FormField]; len(files) > 0 {
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			return nil, h.errs.From(ctx, fmt.Errorf("open uploaded file: %w", err))
		}
		defer f.Close()

		up = memory.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	}

	m, err := h.service.Create(ctx, g, up, input.meta())
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &output{Body: toResponse(m)}, nil
}

func (h *Handler) get(ctx context.Context, input *itemPath) (*output, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	m, err := h.service.Get(ctx, g, input.ID)
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &output{Body: toResponse(m)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	g, err := access.Grant(ctx)
	if err != nil {
		return nil, err
	}

	m, err := h.service.Update(ctx, g, input.ID, input.Body.toDomain())
	if err != nil {
		return nil, h.errs.From(ctx, err)
	}
	return &output{Body: toResponse(m)}, nil
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
