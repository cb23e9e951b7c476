package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dridley/gats/internal/hierarchy"
	"github.com/dridley/gats/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var (
		configPath string
		cronExpr   string
		schedule   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize sprint progress",
		Long: `Prints task counts and hours for every sprint.

With --cron (or --schedule, which uses report.cron from the config file)
the report is printed each time the expression comes due until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, configPath, cronExpr, schedule)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().StringVar(&cronExpr, "cron", "", "cron expression to repeat the report on")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "repeat on report.cron from the config file")
	return cmd
}

func runReport(cmd *cobra.Command, configPath, cronExpr string, schedule bool) error {
	cfg, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if cronExpr == "" && schedule {
		if cfg.Report.Cron == "" {
			return fmt.Errorf("--schedule needs report.cron in %s", configPath)
		}
		cronExpr = cfg.Report.Cron
	}

	if cronExpr == "" {
		return printReport(context.Background(), cmd, repo)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Reporting on %q (Ctrl-C to stop)\n", cronExpr)
	return report.Schedule(ctx, cronExpr, newLogger(cmd, cfg), func(ctx context.Context) error {
		return printReport(ctx, cmd, repo)
	})
}

func printReport(ctx context.Context, cmd *cobra.Command, repo *hierarchy.Repository) error {
	tree, err := repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), report.Build(tree, time.Now()))
}
