// Command streamaudit runs one compliance audit pass over the platform's
// external active conversations and writes the violation report. Wiring only;
// audit logic lives in internal packages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"streamaudit/internal/audit"
	"streamaudit/internal/platform/config"
	"streamaudit/internal/platform/logger"
	"streamaudit/internal/platform/metrics"
	"streamaudit/internal/report"
	"streamaudit/internal/symphony"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "streamaudit:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		outputDir   string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:           "streamaudit",
		Short:         "Audit external conversations for the two-internal-members rule",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML config file")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory the CSV report is written to")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "bounded number of streams classified at once")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log, closeLog, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	auth, err := symphony.NewAuthenticator(cfg.SessionAuthURL, cfg.BotUsername, cfg.PrivateKeyPath, cfg.HTTPTimeout, log)
	if err != nil {
		return err
	}
	session, err := auth.Authenticate(ctx)
	if err != nil {
		return err
	}

	client := symphony.NewClient(cfg.PodURL, session, cfg.HTTPTimeout,
		symphony.WithLogger(log),
		symphony.WithMetrics(m),
		symphony.WithMaxRetries(cfg.MaxRetries),
	)

	classifier := audit.NewClassifier(client, audit.WithPublicPod(cfg.PublicPodID))
	service := audit.NewService(client, client, classifier,
		audit.WithLogger(log),
		audit.WithMetrics(m),
		audit.WithConcurrency(cfg.Concurrency),
	)

	violations, err := service.Run(ctx)
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(cfg.OutputDir, cfg.Timezone)
	if err != nil {
		return err
	}
	path, err := writer.Write(violations)
	if err != nil {
		return err
	}

	log.Info("report written", "path", path, "violations", len(violations))
	metrics.LogSummary(registry, log)
	return nil
}
