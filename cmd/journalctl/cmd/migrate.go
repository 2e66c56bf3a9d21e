// cmd/journalctl/cmd/migrate.go
package cmd

import (
	"fmt"

	"babyjournal/internal/infrastructure/migration"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применить миграции схемы",
	RunE: func(cmd *cobra.Command, _ []string) error {
		gw, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer gw.Close()

		version, dirty, err := migration.NewMigration(gw, migration.DefaultEngine, log).Version()
		if err != nil {
			return fmt.Errorf("ошибка чтения версии схемы: %w", err)
		}
		if dirty {
			color.Yellow("Схема версии %d помечена как dirty", version)
			return nil
		}

		color.Green("Схема актуальна, версия %d (%s)", version, cfg.DB.Driver)
		return nil
	},
}
