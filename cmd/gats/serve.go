package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dridley/gats/internal/dashboard"
	"github.com/dridley/gats/internal/workspace"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON dashboard",
		Long:  "Loads the hierarchy into a workspace and serves cursor navigation and editing over HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from dashboard.port)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if port == 0 {
		port = cfg.Dashboard.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := newLogger(cmd, cfg)
	ws := workspace.New(repo, logger)
	if err := ws.Load(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	return dashboard.Start(ctx, dashboard.StartOpts{
		Workspace: ws,
		Port:      port,
		Out:       cmd.OutOrStdout(),
		Logger:    logger,
	})
}
