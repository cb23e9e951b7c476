package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dridley/gats/internal/config"
	"github.com/dridley/gats/internal/db"
	"github.com/dridley/gats/internal/hierarchy"
	"github.com/dridley/gats/internal/logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", storeName(cfg.Database), err)
	}

	return cfg, gormDB, nil
}

// openRepository connects and returns a repository logging to stderr.
func openRepository(cmd *cobra.Command, configPath string) (*config.Config, *hierarchy.Repository, func(), error) {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cmd, cfg)
	return cfg, hierarchy.New(gormDB, logger), func() { db.Close(gormDB) }, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.New(cfg.Log, cmd.ErrOrStderr())
}

// storeName describes the configured store for messages.
func storeName(cfg config.DatabaseConfig) string {
	if cfg.Driver == config.DriverSQLite {
		return cfg.Path
	}
	return fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
}

// parseID parses a positive entity id argument.
func parseID(kind, s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return uint(n), nil
}
