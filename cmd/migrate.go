package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/delicious-app/delicious/config"
	"github.com/delicious-app/delicious/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		if err := os.MkdirAll(cfg.Database.Path, 0o750); err != nil {
			log.Fatalf("failed to create data directory: %v", err)
		}
		db, err := database.New(cfg.Database.Path)
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		defer db.Close() //nolint:errcheck
		log.Info("database migrations completed successfully")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
