package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencatalog/excel-ingest/database"
	"github.com/opencatalog/excel-ingest/models"
	"github.com/opencatalog/excel-ingest/settings"
)

var purgeName string

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete a community and everything it owns",
	Long: `Deletes the named community. Its domains, their tables and those
tables' columns go with it through the declared cascade constraints.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if purgeName == "" {
			fmt.Println("❌ --name is required")
			os.Exit(1)
		}

		cfg, err := settings.LoadIngestion()
		if err != nil {
			fmt.Println("❌ Settings:", err)
			os.Exit(1)
		}

		db, err := database.Connect(ctx, cfg.DatabaseURL())
		if err != nil {
			fmt.Println("❌ Connect failed:", err)
			os.Exit(1)
		}
		defer db.Close()

		err = db.WithSession(ctx, func(q models.Querier) error {
			community, err := models.FindCommunityByName(ctx, q, purgeName)
			if err != nil {
				return err
			}
			if community == nil {
				fmt.Printf("⏩ No community named %q\n", purgeName)
				return nil
			}
			counts, err := models.CountChildren(ctx, q, community.ID)
			if err != nil {
				return err
			}
			if _, err := models.DeleteCommunity(ctx, q, community.ID); err != nil {
				return err
			}
			fmt.Printf("🗑️ Deleted %q with %d domains, %d tables, %d columns\n",
				purgeName, counts.Domains, counts.Tables, counts.Columns)
			return nil
		})
		if err != nil {
			fmt.Println("❌ Purge failed:", err)
			os.Exit(1)
		}
	},
}

func init() {
	purgeCmd.Flags().StringVar(&purgeName, "name", "", "Name of the community to delete")
}
