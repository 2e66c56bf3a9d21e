// cmd/journalctl/cmd/serve.go
package cmd

import (
	"os/signal"
	"syscall"

	"babyjournal/internal/app/server/app"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP-сервер",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if serveAddr != "" {
			cfg.Server.RunAddress = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return app.Run(ctx, cfg, log)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "адрес сервера, переопределяет RUN_ADDRESS")
}
