package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lsatarcade/internal/api"
	"github.com/abhisek/lsatarcade/internal/client"
	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/llm"
	"github.com/abhisek/lsatarcade/internal/tutor"
)

// Sources recorded with each attempt.
const (
	sourceLive    = "live"
	sourceOffline = "offline"
	sourceProxy   = "proxy"
)

// services bundles the question and tutor backends chosen for this run.
type services struct {
	drills api.DrillGenerator
	tutor  api.Tutor
	mode   llm.Mode
	source string
	model  string
}

// resolveLLMConfig loads provider settings from the environment and applies
// the --offline flag.
func resolveLLMConfig(cmd *cobra.Command) llm.Config {
	cfg := llm.LoadConfig()
	if off, _ := cmd.Flags().GetBool("offline"); off {
		cfg.Offline = true
	}
	return cfg
}

// buildLocalServices picks live or offline mode once. A provider that
// cannot be constructed degrades to offline with a warning.
func buildLocalServices(ctx context.Context, cmd *cobra.Command, logger *slog.Logger) services {
	cfg := resolveLLMConfig(cmd)

	var provider llm.Provider
	if cfg.Mode() == llm.ModeLive {
		p, err := llm.NewProvider(ctx, cfg, logger)
		if err != nil {
			logger.WarnContext(ctx, "llm_provider_unavailable", slog.String("error", err.Error()))
		} else {
			provider = p
		}
	}

	svc := services{
		drills: drill.NewService(provider, drill.DefaultConfig(), drill.WithLogger(logger)),
		tutor:  tutor.NewService(provider, tutor.DefaultConfig(), tutor.WithLogger(logger)),
		mode:   llm.ModeOffline,
		source: sourceOffline,
	}
	if provider != nil {
		svc.mode = llm.ModeLive
		svc.source = sourceLive
		svc.model = provider.ModelID()
	}
	return svc
}

// buildServices is buildLocalServices unless a remote server is configured.
func buildServices(ctx context.Context, cmd *cobra.Command, logger *slog.Logger) services {
	base, _ := cmd.Flags().GetString("api-base")
	if base == "" {
		base = os.Getenv("LSAT_API_BASE")
	}
	if off, _ := cmd.Flags().GetBool("offline"); off || strings.TrimSpace(base) == "" {
		return buildLocalServices(ctx, cmd, logger)
	}

	c := client.New(base, client.WithLogger(logger))
	return services{
		drills: c,
		tutor:  c,
		mode:   llm.ModeLive,
		source: sourceProxy,
		model:  c.BaseURL(),
	}
}
