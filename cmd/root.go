package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Companion CLI for the Excel catalog ingestion pipeline",
	Long: `catalogctl manages the catalog database and the S3 landing bucket
that feed the ingestion Lambda.

Examples:

  catalogctl initdb
  catalogctl seed --file seed.yaml
  catalogctl upload --dir local_excel_files
  catalogctl purge --name "Community from sales.xlsx"
`,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.AddCommand(initdbCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(tokenCmd)
}
