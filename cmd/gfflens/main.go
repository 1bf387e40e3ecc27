package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/gfflens/internal/config"
	"github.com/sanspareilsmyn/gfflens/internal/logging"
	"github.com/sanspareilsmyn/gfflens/internal/pipeline"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "gfflens",
		Short: "GFFLens - aggregate statistics for GFF annotation files",
		Long: `GFFLens scans a GFF (General Feature Format) file in a single pass and
writes aggregate statistics as JSON: feature counts per type, average
feature length per type, and the strand distribution.

Examples:
  gfflens --gff genes.gff --out stats.json
  gfflens --gff genes.gff --out - --filter-type CDS`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configFile)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "path to an optional YAML configuration file")
	cmd.Flags().String("gff", "", `input GFF file (default "input.gff")`)
	cmd.Flags().String("out", "", `output JSON file, '-' for stdout (default "output.json")`)
	cmd.Flags().String("filter-type", "", "restrict statistics to one feature type (e.g. gene, CDS, mRNA)")
	cmd.Flags().String("log-level", "", "log level: debug | info | warn | error")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gfflens version %s\n", version)
		},
	}
}

func run(cmd *cobra.Command, configFile string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() // Flush buffered logs on exit
	}()

	sugar := logger.Sugar()
	sugar.Infow("Configuration loaded",
		"input", cfg.Input.Path,
		"report", cfg.Report.Path,
		"filter_type", cfg.Input.FilterType,
	)

	// Handle Graceful Shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		sugar.Infow("Received signal, stopping...", "signal", sig.String())
		cancel()
	}()

	runErr := pipeline.New(cfg, logger).Run(ctx)
	switch {
	case runErr == nil:
		sugar.Info("GFFLens finished.")
		return nil
	case errors.Is(runErr, context.Canceled):
		sugar.Info("Run cancelled.")
		return nil
	default:
		sugar.Errorw("Run failed", zap.Error(runErr))
		return runErr
	}
}
