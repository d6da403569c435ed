package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencatalog/excel-ingest/database"
	"github.com/opencatalog/excel-ingest/models"
	"github.com/opencatalog/excel-ingest/seed"
	"github.com/opencatalog/excel-ingest/settings"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML seed file into the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		f, err := seed.Load(seedFile)
		if err != nil {
			fmt.Println("❌ Seed file:", err)
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

		if err := db.Init(ctx); err != nil {
			fmt.Println("❌ Schema initialization failed:", err)
			os.Exit(1)
		}

		var counts seed.Counts
		err = db.WithSession(ctx, func(q models.Querier) error {
			counts, err = f.Apply(ctx, q)
			return err
		})
		if err != nil {
			fmt.Println("❌ Seeding failed:", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Seeded %d communities, %d domains, %d tables, %d columns, %d code sets, %d code values\n",
			counts.Communities, counts.Domains, counts.Tables, counts.Columns, counts.CodeSets, counts.CodeValues)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "seed.yaml", "Path to the YAML seed file")
}
