package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/delicious-app/delicious/config"
	"github.com/delicious-app/delicious/database"
)

var genInviteCmd = &cobra.Command{
	Use:   "gen-invite",
	Short: "Create a single-use developer invite code",
	Long:  `Create a single-use developer invite code directly from the terminal, without going through the invite-member form.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		if cfg.MasterKey == "" {
			log.Fatal("no master key configured, refusing to create invite codes")
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		defer db.Close() //nolint:errcheck

		code, err := db.CreateInviteCode(cmd.Context())
		if err != nil {
			log.Fatalf("failed to create invite code: %v", err)
		}
		fmt.Println(code.Code)
	},
}

func init() {
	rootCmd.AddCommand(genInviteCmd)
}
