package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencatalog/excel-ingest/auth"
	"github.com/opencatalog/excel-ingest/settings"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for testing the API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := settings.LoadAPI()
		if err != nil {
			fmt.Println("❌ Settings:", err)
			os.Exit(1)
		}

		signer, err := auth.NewSigner(cfg)
		if err != nil {
			fmt.Println("❌ Signer:", err)
			os.Exit(1)
		}

		token, err := signer.Issue(tokenSubject)
		if err != nil {
			fmt.Println("❌ Token:", err)
			os.Exit(1)
		}
		fmt.Println(token)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "dev", "Subject claim for the token")
}
