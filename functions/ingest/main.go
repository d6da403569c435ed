package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/opencatalog/excel-ingest/database"
	"github.com/opencatalog/excel-ingest/ingest"
	"github.com/opencatalog/excel-ingest/logging"
	"github.com/opencatalog/excel-ingest/settings"
	"github.com/opencatalog/excel-ingest/storage"
)

func main() {
	ctx := context.Background()
	logger := logging.New(os.Stdout)

	// Settings and clients load once at cold start; invocations reuse them.
	cfg, err := settings.LoadIngestion()
	if err != nil {
		level.Error(logger).Log("msg", "failed to load settings", "err", err)
		panic(err)
	}
	level.Info(logger).Log("msg", "settings loaded", "region", cfg.AWSRegion, "bucket", cfg.S3Bucket)

	client, err := storage.New(ctx, storage.Config{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		level.Error(logger).Log("msg", "failed to initialize s3 client", "err", err)
		panic(err)
	}

	if err := database.EnsureDatabase(ctx, cfg.MaintenanceURL(), cfg.DBName); err != nil {
		level.Error(logger).Log("msg", "failed to ensure database", "err", err)
		panic(err)
	}
	db, err := database.Connect(ctx, cfg.DatabaseURL())
	if err != nil {
		level.Error(logger).Log("msg", "failed to connect database", "db", cfg.Redacted(), "err", err)
		panic(err)
	}

	lambda.Start(func(ctx context.Context, event events.S3Event) (ingest.Response, error) {
		lc, _ := lambdacontext.FromContext(ctx)
		h := handler{
			ing: &ingest.Ingestor{
				Storage: client,
				Catalog: &database.Catalog{DB: db},
				Logger:  log.With(logger, "request_id", requestID(lc)),
			},
		}
		return h.handle(ctx, event)
	})
}

func requestID(lc *lambdacontext.LambdaContext) string {
	if lc == nil {
		return ""
	}
	return lc.AwsRequestID
}
