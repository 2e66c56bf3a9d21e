package logger

import (
	"io"
	"os"
	"strings"

	"babyjournal/internal/app/server/config"
	"babyjournal/internal/utils/logger/slogpretty"

	"golang.org/x/exp/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type options struct {
	level   string
	logPath string
}

type Option func(*options)

// WithLevel переопределяет уровень, выбранный по окружению
func WithLevel(level string) Option {
	return func(o *options) { o.level = level }
}

// WithFile дублирует JSON-вывод в файл с ротацией
func WithFile(path string) Option {
	return func(o *options) { o.logPath = path }
}

func New(env string, opts ...Option) *slog.Logger {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlog()
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(output(o.logPath), &slog.HandlerOptions{Level: level(o.level, slog.LevelDebug)}))
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(output(o.logPath), &slog.HandlerOptions{Level: level(o.level, slog.LevelInfo)}))
	default:
		log = slog.New(slog.NewJSONHandler(output(o.logPath), &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func output(path string) io.Writer {
	if path == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})
}

func level(raw string, fallback slog.Level) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
