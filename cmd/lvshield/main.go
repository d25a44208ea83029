// Command lvshield computes shell layouts, masses and decay budgets for a
// concentric shielding assembly and sizes simulation runs from them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/lvshield/config"
	"github.com/katalvlaran/lvshield/engine"
	"github.com/katalvlaran/lvshield/material"
	"github.com/katalvlaran/lvshield/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	materialsDB string
	metricsFile string

	// Set up by PersistentPreRunE
	logger   *zap.Logger
	registry *prometheus.Registry
	app      *appState
)

// appState is everything a subcommand needs, built once per invocation.
type appState struct {
	cfg    *config.Config
	engine *engine.Engine
	closer func() error
}

var rootCmd = &cobra.Command{
	Use:   "lvshield",
	Short: "Shell geometry and activity budget calculator",
	Long: `lvshield derives the shell extents of a concentric Cu/Pb shielding
assembly, the mass of each shell and the expected number of decays from
trace contamination over an exposure time. The decay total sizes the number
of primary events of a downstream simulation run.

All lengths are millimetres, masses kilograms, times seconds and specific
activities Bq/kg unless a unit is given explicitly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if materialsDB != "" {
			cfg.Materials.Database = materialsDB
		}
		logger, err = cfg.Logging.Build(verbose)
		if err != nil {
			return err
		}
		app, err = newApp(cmd.Context(), cfg)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app != nil && app.closer != nil {
			if err := app.closer(); err != nil {
				logger.Warn("closing material database", zap.Error(err))
			}
		}
		if metricsFile != "" {
			if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
		}
		if logger != nil {
			_ = logger.Sync()
		}
		return nil
	},
}

func newApp(ctx context.Context, cfg *config.Config) (*appState, error) {
	registry = prometheus.NewRegistry()
	rec, err := metrics.NewPrometheus(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	opts := []engine.Option{engine.WithLogger(logger), engine.WithRecorder(rec)}
	var closer func() error
	if cfg.Materials.Database != "" {
		db, err := material.OpenSQLite(ctx, cfg.Materials.Database)
		if err != nil {
			return nil, err
		}
		logger.Debug("using material database", zap.String("path", db.Path()))
		opts = append(opts, engine.WithMaterials(db))
		closer = db.Close
	}

	e := engine.New(opts...)
	if err := cfg.Apply(e); err != nil {
		if closer != nil {
			_ = closer()
		}
		return nil, fmt.Errorf("apply config: %w", err)
	}

	return &appState{cfg: cfg, engine: e, closer: closer}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lvshield.yaml", "assembly config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&materialsDB, "materials-db", "", "SQLite material database (default: built-in catalog)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	rootCmd.AddCommand(layoutCmd, massCmd, budgetCmd, runCmd, commandsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
