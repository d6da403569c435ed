package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencatalog/excel-ingest/database"
	"github.com/opencatalog/excel-ingest/settings"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the catalog database and tables if they do not exist",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := settings.LoadIngestion()
		if err != nil {
			fmt.Println("❌ Settings:", err)
			os.Exit(1)
		}

		if err := database.EnsureDatabase(ctx, cfg.MaintenanceURL(), cfg.DBName); err != nil {
			fmt.Println("❌ Ensure database failed:", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Database %q ensured\n", cfg.DBName)

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
		fmt.Println("✅ Catalog tables ensured")
	},
}
