package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "task-manager-api.com/task-manager-api/internal/configs"
	"task-manager-api.com/task-manager-api/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadDatabase()
		logger.Init(cfg.LogLevel, cfg.LogPretty)

		db, err := config.Open(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := config.Migrate(db); err != nil {
			return err
		}

		log.Info().Str("dsn", cfg.DatabaseDSN).Msg("database migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
