package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/lsatarcade/internal/api"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz API over HTTP",
		Long: `Serve POST /api/lsat (drill and tutor modes), POST /api/tutor and health probes.

Live mode is selected when the configured provider has an API key; otherwise
every request is answered by the offline mock.`,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides LSAT_HTTP_ADDR, default :8080)")
	cmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origin, repeatable (overrides LSAT_CORS_ORIGINS)")
	cmd.Flags().Duration("timeout", 0, "Per-request timeout (default 30s)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := api.ConfigFromEnv()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if origins, _ := cmd.Flags().GetStringSlice("cors-origin"); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}
	if d, _ := cmd.Flags().GetDuration("timeout"); d > 0 {
		cfg.Timeout = d
	}

	logger := slog.Default()
	svc := buildLocalServices(ctx, cmd, logger)
	logger.Info("serve_mode", slog.String("mode", string(svc.mode)), slog.String("model", svc.model))

	router := api.NewRouter(cfg, api.Deps{
		Drills: svc.drills,
		Tutor:  svc.tutor,
		Mode:   svc.mode,
		Logger: logger,
	})
	return api.Serve(ctx, cfg, router, logger)
}
