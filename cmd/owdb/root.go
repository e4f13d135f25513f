package main

import (
	"fmt"
	"os"

	"github.com/OWDB/OWDB-Backend/internal/config"
	"github.com/OWDB/OWDB-Backend/internal/db"
	"github.com/OWDB/OWDB-Backend/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app carries what the subcommands share once the root has loaded config.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "owdb",
		Short:         "OWDB wrestler data tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load(".env.local")

			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	cmd.AddCommand(newEnrichCmd(a))
	cmd.AddCommand(newBatchesCmd(a))
	cmd.AddCommand(newMigrateCmd(a))
	cmd.AddCommand(newSeedCmd(a))
	return cmd
}

// openDB validates the config and connects. The returned func closes the
// pool.
func (a *app) openDB() (*gorm.DB, func(), error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, nil, err
	}
	conn, err := db.Connect(a.cfg.DatabaseURL, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return conn, func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
