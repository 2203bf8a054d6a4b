package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"SentimentScanner/internal/app"
	"SentimentScanner/internal/config"
	"SentimentScanner/internal/logging"
)

type rootFlags struct {
	configPath string
	output     string
	logLevel   string
	dryRun     bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "sentimentscanner",
		Short: "Collect AI news, score sentiment and publish a report",
		Long: `sentimentscanner runs one batch: it pulls AI headlines from a keyword
search API and RSS feeds, merges duplicates, scores each headline with a hosted
sentiment model and writes an aggregated JSON report.

Credentials come from the environment (or a .env file):
  NEWSAPI_KEY     keyword search API key
  HF_API_TOKEN    inference API token`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(flags.configPath)
			flags.apply(&cfg)

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, runID := logging.ForRun(logging.New(cfg.Logging.Level))
			logger.Debug("configuration loaded", "run_id", runID, "dry_run", flags.dryRun)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application := app.New(cfg, logger, app.Options{DryRun: flags.dryRun})
			if _, err := application.Run(ctx); err != nil {
				logger.Error("run failed", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.SetContext(context.Background())
	cmd.Flags().StringVar(&flags.configPath, "config", "", "YAML config file (default $SENTIMENT_SCANNER_CONFIG)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "report output path (overrides config and OUTPUT_PATH)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "run the pipeline without writing the report or notifying")

	return cmd
}

// apply lets explicit flags win over file and environment settings.
func (f rootFlags) apply(cfg *config.Config) {
	if f.output != "" {
		cfg.Output.Path = f.output
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
}
