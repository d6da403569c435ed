package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/opencatalog/excel-ingest/ingest"
)

type handler struct {
	ing *ingest.Ingestor
}

// handle adapts the Ingestor to the Lambda contract. Failures are encoded in
// the response status, never surfaced as invocation errors, so the platform
// does not redeliver events the pipeline already classified.
func (h *handler) handle(ctx context.Context, event events.S3Event) (ingest.Response, error) {
	return h.ing.Handle(ctx, event), nil
}
