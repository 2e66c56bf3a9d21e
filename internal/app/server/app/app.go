// Package app собирает сервер: хранилище, миграции, зеркало бэкапов и HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"babyjournal/internal/app/server/api"
	"babyjournal/internal/app/server/config"
	"babyjournal/internal/domain/backup"
	"babyjournal/internal/infrastructure/migration"
	"babyjournal/internal/infrastructure/objectstore"
	"babyjournal/internal/infrastructure/storage"
	"babyjournal/internal/infrastructure/storage/postgres"
	"babyjournal/internal/infrastructure/storage/sqlite"
	"babyjournal/internal/utils/clock"

	"github.com/spf13/afero"
	"golang.org/x/exp/slog"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

// OpenStorage открывает базу по DB_DRIVER и применяет миграции
func OpenStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage.Gateway, error) {
	var (
		gw  *storage.Gateway
		err error
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		gw, err = postgres.Open(ctx, cfg.DB.DatabaseURI, log)
	default:
		gw, err = sqlite.Open(ctx, cfg.DB.DatabaseURI, log)
	}
	if err != nil {
		return nil, err
	}

	if err := migration.NewMigration(gw, migration.DefaultEngine, log).Up(); err != nil {
		gw.Close()
		return nil, err
	}
	return gw, nil
}

// NewMirror возвращает nil, если бакет не задан.
// С BACKUP_AGE_RECIPIENT архивы шифруются перед отправкой.
func NewMirror(ctx context.Context, cfg config.Backup) (backup.Mirror, error) {
	if !cfg.MirrorEnabled() {
		return nil, nil
	}

	s3, err := objectstore.NewS3(ctx, objectstore.S3Config{
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		Prefix:    cfg.Prefix,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
	})
	if err != nil {
		return nil, err
	}
	if cfg.AgeRecipient == "" {
		return s3, nil
	}
	enc, err := objectstore.NewEncrypted(s3, cfg.AgeRecipient)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// Deps собирает зависимости api поверх открытого хранилища
func Deps(ctx context.Context, cfg *config.Config, gw *storage.Gateway) (api.Deps, error) {
	mirror, err := NewMirror(ctx, cfg.Backup)
	if err != nil {
		return api.Deps{}, fmt.Errorf("backup mirror: %w", err)
	}
	return api.Deps{
		Config:  cfg,
		Gateway: gw,
		Fs:      afero.NewOsFs(),
		Mirror:  mirror,
		Clock:   clock.RealClock{},
		IDs:     clock.UUIDGenerator{},
	}, nil
}

// Run поднимает HTTP-сервер и блокируется до отмены ctx
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	gw, err := OpenStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer gw.Close()

	deps, err := Deps(ctx, cfg, gw)
	if err != nil {
		return err
	}
	if deps.Mirror != nil {
		log.Info("backup mirror enabled", slog.String("bucket", cfg.Backup.Bucket))
	}

	svc := api.NewServices(deps, log)
	go purgeSessions(ctx, svc, log)

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(deps, svc, log),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("address", srv.Addr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// purgeSessions периодически удаляет истекшие сессии
func purgeSessions(ctx context.Context, svc *api.Services, log *slog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Sessions.PurgeExpired(ctx); err != nil {
				log.Error("purge sessions", slog.String("error", err.Error()))
			}
		}
	}
}
