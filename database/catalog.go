package database

import (
	"context"

	"github.com/opencatalog/excel-ingest/models"
)

// Catalog adapts DB to what the ingestion handler needs. Each call runs in
// its own scoped session.
type Catalog struct {
	DB *DB
}

// InitSchema creates the catalog tables when absent.
func (c *Catalog) InitSchema(ctx context.Context) error {
	return c.DB.Init(ctx)
}

// EnsureCommunity looks a community up by name and inserts it when missing.
// Find and insert share one session, so repeated invocations deriving the
// same name insert at most one row.
func (c *Catalog) EnsureCommunity(ctx context.Context, name, description string) (bool, error) {
	var created bool
	err := c.DB.WithSession(ctx, func(q models.Querier) error {
		existing, err := models.FindCommunityByName(ctx, q, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		community := &models.Community{Name: name, Description: &description}
		if err := models.InsertCommunity(ctx, q, community); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}
