// cmd/journalctl/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"babyjournal/internal/app/server/app"
	"babyjournal/internal/app/server/config"
	"babyjournal/internal/domain/settings"
	"babyjournal/internal/domain/user"
	"babyjournal/internal/infrastructure/storage"
	"babyjournal/internal/infrastructure/storage/sqlstore"
	"babyjournal/internal/utils/clock"
	"babyjournal/internal/utils/logger"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var (
	cfg   *config.Config
	log   *slog.Logger
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "journalctl",
	Short: "journalctl - администрирование дневника малыша",
	Long: `journalctl запускает сервер дневника и выполняет служебные операции
над той же базой: миграции, создание администратора, настройки сайта.

Конфигурация читается из .env и переменных окружения, как у сервера.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	level := cfg.Logger.LogLevel
	if debug {
		level = "debug"
	}
	log = logger.New(cfg.Env, logger.WithLevel(level), logger.WithFile(cfg.Logger.LogPath))
	return nil
}

// openStorage открывает базу с миграциями; закрыть обязан вызывающий
func openStorage(ctx context.Context) (*storage.Gateway, error) {
	gw, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы: %w", err)
	}
	return gw, nil
}

// services - сервисы, которые нужны CLI без HTTP-слоя
func services(gw *storage.Gateway) (*user.Service, *settings.Service) {
	users := sqlstore.NewUserRepository(gw, log)
	site := settings.NewService(sqlstore.NewSettingsRepository(gw, log), users, log)
	return user.NewService(users, site, user.NewPasswordValidator(cfg.Auth.StrictPasswords), clock.RealClock{}, log), site
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(createAdminCmd)

	rootCmd.AddCommand(siteCmd)
	siteCmd.AddCommand(siteShowCmd)
	siteCmd.AddCommand(siteSetCmd)
}
