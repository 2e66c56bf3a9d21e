// Package logger пишет по строке на запрос к API дневника.
package logger

import (
	"time"

	"babyjournal/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	return &Logger{
		log: log.With(slog.String("component", "http_logger")),
	}
}

// Middleware логирует операцию после ответа. Уровень по статусу:
// 5xx - Error, 4xx - Warn, остальное - Info
func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)

		status := ctx.Status()
		attrs := []slog.Attr{
			slog.String("method", ctx.Method()),
			slog.String("path", ctx.URL().Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", ctx.RemoteAddr()),
		}
		if op := ctx.Operation(); op != nil {
			attrs = append(attrs, slog.String("operation", op.OperationID))
		}
		if journalID := ctx.Param("journalId"); journalID != "" {
			attrs = append(attrs, slog.String("journal_id", journalID))
		}
		// личность видна только если auth стоит раньше logger
		if id, ok := session.IdentityFrom(ctx.Context()); ok {
			attrs = append(attrs, slog.Int64("user_id", id.UserID))
		}

		l.log.LogAttrs(ctx.Context(), level(status), "api request", attrs...)
	}
}

func level(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
