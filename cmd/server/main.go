package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"babyjournal/internal/app/server/app"
	"babyjournal/internal/app/server/config"
	"babyjournal/internal/utils/logger"

	"golang.org/x/exp/slog"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env, logger.WithLevel(conf.Logger.LogLevel), logger.WithFile(conf.Logger.LogPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, conf, log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
