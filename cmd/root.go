package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lsatarcade/internal/logging"
	"github.com/abhisek/lsatarcade/internal/store"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lsatarcade",
		Short: "LSAT practice drills and tutoring",
		Long: "LSAT Arcade serves original LSAT-style practice questions and a hinting tutor,\n" +
			"backed by a hosted model when a key is configured and a local mock otherwise.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrill(cmd, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LSAT_DB env var)")
	pf.Bool("offline", false, "Force offline mode (overrides LSAT_OFFLINE)")
	pf.String("api-base", "", "Use a remote server instead of calling a model directly (overrides LSAT_API_BASE)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides LSAT_LOG_LEVEL)")
	pf.String("log-format", "", "Log format: json or text (overrides LSAT_LOG_FORMAT)")
	pf.String("log-file", "", "Write logs to a rotating file (overrides LSAT_LOG_FILE)")

	addDrillFlags(rootCmd)

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newDrillCmd())
	rootCmd.AddCommand(newTutorCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newLLMCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// initLogging installs the process logger. Flags override LSAT_LOG_*.
func initLogging(cmd *cobra.Command) error {
	cfg := logging.ConfigFromEnv()
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Format = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.File = v
	}
	if cfg.Level == "" && cfg.File == "" && cmd.Name() != "serve" {
		// Interactive commands share the terminal with the drill card.
		cfg.Level = "error"
	}
	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LSAT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the profile database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
