package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/delicious-app/delicious/config"
	"github.com/delicious-app/delicious/database"
)

// Categories are managed out-of-band; this command replaces the admin
// console for that purpose.
var addCategoryCmd = &cobra.Command{
	Use:     "add-category <name>...",
	Short:   "Create recipe categories",
	Example: `delicious add-category Breakfast Desserts "Street Food"`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		db, err := database.New(cfg.Database.Path)
		if err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		defer db.Close() //nolint:errcheck

		for _, name := range args {
			cat, err := db.CreateCategory(cmd.Context(), name)
			if err != nil {
				log.Fatalf("failed to create category %q: %v", name, err)
			}
			log.Info("category created", "name", cat.Name, "slug", cat.Slug)
		}
	},
}

func init() {
	rootCmd.AddCommand(addCategoryCmd)
}
