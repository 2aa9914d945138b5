package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ocrdesk/ocrdesk/internal/config"
	"github.com/ocrdesk/ocrdesk/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the local upload page",
	Long: `Start the local web host. It serves the upload page, forwards browser
submissions to the OCR backend, and renders results server-side.

Configuration changes to ~/.ocrdesk/config.yaml are picked up without a
restart.

Examples:
  ocrdesk serve                  # Start on default port 8080
  ocrdesk serve --port 3000      # Start on custom port
  ocrdesk serve --host 0.0.0.0   # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		cfgMgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfgMgr.OnChange(func(_ *config.Config) {
			logger.Info("configuration reloaded")
		})
		cfgMgr.WatchConfig()

		host := serveHost
		if host == "" {
			host = cfgMgr.Get().Serve.Host
		}
		port := servePort
		if port == "" {
			port = cfgMgr.Get().Serve.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Backend:       newBackendClient(cfgMgr.Get()),
			ConfigManager: cfgMgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
