package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/opencatalog/excel-ingest/excel"
	"github.com/opencatalog/excel-ingest/storage"
)

// Response is the invocation result for every outcome, success or failure.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// ObjectFetcher downloads one remote object to a local file.
type ObjectFetcher interface {
	Download(ctx context.Context, bucket, key, path string) error
}

// Catalog is the slice of the database layer the handler needs: idempotent
// schema setup and the by-name community upsert.
type Catalog interface {
	InitSchema(ctx context.Context) error
	// EnsureCommunity inserts a community with the given name unless one
	// already exists. Reports whether a row was created.
	EnsureCommunity(ctx context.Context, name, description string) (bool, error)
}

// Ingestor processes S3 upload notifications. All collaborators are injected
// so one instance can be built at cold start and reused across invocations.
type Ingestor struct {
	Storage    ObjectFetcher
	Catalog    Catalog
	Logger     log.Logger
	ScratchDir string // defaults to /tmp, the writable path on Lambda
}

func (ing *Ingestor) scratchDir() string {
	if ing.ScratchDir != "" {
		return ing.ScratchDir
	}
	return "/tmp"
}

// Handle runs the ingestion pipeline for one trigger event. It never returns
// an error; every outcome is encoded in the Response so the platform does not
// redeliver events the code has already classified.
func (ing *Ingestor) Handle(ctx context.Context, event events.S3Event) Response {
	if len(event.Records) == 0 {
		level.Error(ing.Logger).Log("msg", "invalid event: no records")
		return Response{StatusCode: http.StatusBadRequest, Body: "Invalid S3 event."}
	}

	record := event.Records[0]
	if record.EventSource != "aws:s3" {
		level.Info(ing.Logger).Log("msg", "event source is not s3, skipping", "event_source", record.EventSource)
		return Response{StatusCode: http.StatusOK, Body: "Not an S3 event."}
	}

	bucket := record.S3.Bucket.Name
	key := record.S3.Object.Key
	level.Info(ing.Logger).Log("msg", "processing upload", "bucket", bucket, "key", key)

	scratch := filepath.Join(ing.scratchDir(), filepath.Base(key))
	defer ing.cleanup(scratch)

	if err := ing.Storage.Download(ctx, bucket, key, scratch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			level.Error(ing.Logger).Log("msg", "object not found", "bucket", bucket, "key", key)
			return Response{StatusCode: http.StatusNotFound, Body: fmt.Sprintf("S3 object %q not found.", key)}
		}
		level.Error(ing.Logger).Log("msg", "download failed", "key", key, "err", err)
		return Response{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("Processing failed: %v", err)}
	}

	sheet, err := excel.Load(scratch)
	if err != nil {
		level.Error(ing.Logger).Log("msg", "spreadsheet read failed", "key", key, "err", err)
		return Response{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("Processing failed: %v", err)}
	}
	level.Info(ing.Logger).Log("msg", "spreadsheet loaded",
		"sheet", sheet.Name, "rows", sheet.RowCount(), "columns", sheet.ColumnCount())

	cleanSheet(sheet)

	if err := ing.Catalog.InitSchema(ctx); err != nil {
		level.Error(ing.Logger).Log("msg", "schema initialization failed", "err", err)
		return Response{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("DB initialization failed: %v", err)}
	}

	name := "Community from " + filepath.Base(key)
	created, err := ing.Catalog.EnsureCommunity(ctx, name, "Auto-created from "+key)
	if err != nil {
		level.Error(ing.Logger).Log("msg", "community upsert failed", "name", name, "err", err)
		return Response{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("Community insert failed: %v", err)}
	}
	if created {
		level.Info(ing.Logger).Log("msg", "community created", "name", name)
	} else {
		level.Info(ing.Logger).Log("msg", "community already exists, skipping", "name", name)
	}

	return Response{StatusCode: http.StatusOK, Body: "File processed successfully."}
}

// cleanSheet is where cleaning and formatting rules will go once they are
// specified. Intentionally a no-op until then.
func cleanSheet(*excel.Sheet) {}

func (ing *Ingestor) cleanup(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		level.Error(ing.Logger).Log("msg", "scratch cleanup failed", "path", path, "err", err)
		return
	}
	level.Debug(ing.Logger).Log("msg", "scratch file removed", "path", path)
}
