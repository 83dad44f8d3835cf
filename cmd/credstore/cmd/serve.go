package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/nvkv/credstore/pkg/api"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the credential store over HTTP",
	Long: `Serve the credential store over HTTP.

The API lives under /api/v1 and is protected by the configured API key;
Prometheus metrics are exposed unprotected at /metrics.

Example:
  credstore serve --config ./credstore.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel(cfg.Logging.Level),
			TimeFormat: time.TimeOnly,
		}))
		slog.SetDefault(logger)

		if cfg.APIKey == "" {
			return fmt.Errorf("no API key configured; run 'credstore init' or set CREDSTORE_API_KEY")
		}
		if servePort != 0 {
			cfg.Port = servePort
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		logger.Info("starting credstore API",
			"backend", cfg.Backend,
			"bind", cfg.Bind,
			"port", cfg.Port,
			"entries", s.Entries())

		return api.StartServer(s, api.ServerConfig{
			Port:    cfg.Port,
			Bind:    cfg.Bind,
			APIKey:  cfg.APIKey,
			Backend: cfg.Backend,
		})
	},
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Override the configured port")
}
