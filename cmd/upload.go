package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opencatalog/excel-ingest/logging"
	"github.com/opencatalog/excel-ingest/settings"
	"github.com/opencatalog/excel-ingest/storage"
	"github.com/opencatalog/excel-ingest/uploader"
)

var (
	uploadDir    string
	uploadPrefix string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Sync local Excel files to the S3 landing bucket",
	Long: `Uploads every spreadsheet in the local directory to the landing
bucket. Files whose remote copy already has the same content hash are
skipped; changed files are overwritten. Individual failures do not stop
the batch.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := settings.LoadIngestion()
		if err != nil {
			fmt.Println("❌ Settings:", err)
			os.Exit(1)
		}

		client, err := storage.New(ctx, storage.Config{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			fmt.Println("❌ S3 client:", err)
			os.Exit(1)
		}

		syncer := &uploader.Syncer{
			Store:  client,
			Bucket: cfg.S3Bucket,
			Prefix: uploadPrefix,
			Logger: logging.New(os.Stdout),
		}

		fmt.Printf("🚀 Uploading spreadsheets from %s to s3://%s/%s\n", uploadDir, cfg.S3Bucket, uploadPrefix)
		summary, err := syncer.Sync(ctx, uploadDir)
		if err != nil {
			fmt.Println("❌ Upload failed:", err)
			os.Exit(1)
		}

		fmt.Printf("🏁 Summary: %s: %d, %s: %d, %s: %d\n",
			color.GreenString("uploaded/up-to-date"), summary.Uploaded,
			color.YellowString("skipped"), summary.Skipped,
			color.RedString("failed"), summary.Failed)
		if summary.Failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadDir, "dir", "local_excel_files", "Directory containing spreadsheets to upload")
	uploadCmd.Flags().StringVar(&uploadPrefix, "prefix", "raw/", "Key prefix in the landing bucket")
}
