package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of pgx needed by the repository functions. Pool,
// pooled connection and transaction all satisfy it, so callers decide the
// session scope.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertCommunity inserts c and fills in its generated ID.
func InsertCommunity(ctx context.Context, q Querier, c *Community) error {
	err := q.QueryRow(ctx,
		`INSERT INTO communities (name, description) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Description,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert community %q: %w", c.Name, err)
	}
	return nil
}

// FindCommunityByName returns the community with the given name, or nil when
// none exists.
func FindCommunityByName(ctx context.Context, q Querier, name string) (*Community, error) {
	var c Community
	err := q.QueryRow(ctx,
		`SELECT id, name, description FROM communities WHERE name = $1`,
		name,
	).Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find community %q: %w", name, err)
	}
	return &c, nil
}

// InsertDomain inserts d.
func InsertDomain(ctx context.Context, q Querier, d *Domain) error {
	_, err := q.Exec(ctx,
		`INSERT INTO domains (id, name, community_id) VALUES ($1, $2, $3)`,
		d.ID, d.Name, d.CommunityID,
	)
	if err != nil {
		return fmt.Errorf("insert domain %q: %w", d.ID, err)
	}
	return nil
}

// InsertDataTable inserts t and fills in the database-assigned timestamps.
func InsertDataTable(ctx context.Context, q Querier, t *DataTable) error {
	err := q.QueryRow(ctx,
		`INSERT INTO data_tables (id, name, description, domain_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		t.ID, t.Name, t.Description, t.DomainID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert data table %q: %w", t.ID, err)
	}
	return nil
}

// UpdateDataTable writes the mutable fields of t and refreshes updated_at.
func UpdateDataTable(ctx context.Context, q Querier, t *DataTable) error {
	err := q.QueryRow(ctx,
		`UPDATE data_tables
		 SET name = $2, description = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		t.ID, t.Name, t.Description,
	).Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update data table %q: no such row", t.ID)
	}
	if err != nil {
		return fmt.Errorf("update data table %q: %w", t.ID, err)
	}
	return nil
}

// InsertDataColumn inserts c and fills in the database-assigned timestamps.
func InsertDataColumn(ctx context.Context, q Querier, c *DataColumn) error {
	err := q.QueryRow(ctx,
		`INSERT INTO data_columns (id, name, description, data_type, data_table_id, code_set_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Description, c.DataType, c.DataTableID, c.CodeSetID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert data column %q: %w", c.ID, err)
	}
	return nil
}

// InsertCodeSet inserts s.
func InsertCodeSet(ctx context.Context, q Querier, s *CodeSet) error {
	_, err := q.Exec(ctx,
		`INSERT INTO code_sets (id, name) VALUES ($1, $2)`,
		s.ID, s.Name,
	)
	if err != nil {
		return fmt.Errorf("insert code set %q: %w", s.ID, err)
	}
	return nil
}

// InsertCodeValue inserts v.
func InsertCodeValue(ctx context.Context, q Querier, v *CodeValue) error {
	_, err := q.Exec(ctx,
		`INSERT INTO code_values (id, code, label, code_set_id) VALUES ($1, $2, $3, $4)`,
		v.ID, v.Code, v.Label, v.CodeSetID,
	)
	if err != nil {
		return fmt.Errorf("insert code value %q: %w", v.ID, err)
	}
	return nil
}

// ChildCounts reports how many domains, tables and columns hang off a
// community. Used to show what a purge is about to remove.
type ChildCounts struct {
	Domains int
	Tables  int
	Columns int
}

// CountChildren walks the ownership tree under the community.
func CountChildren(ctx context.Context, q Querier, communityID int) (ChildCounts, error) {
	var c ChildCounts
	err := q.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM domains d WHERE d.community_id = $1),
			(SELECT count(*) FROM data_tables t
			   JOIN domains d ON t.domain_id = d.id WHERE d.community_id = $1),
			(SELECT count(*) FROM data_columns col
			   JOIN data_tables t ON col.data_table_id = t.id
			   JOIN domains d ON t.domain_id = d.id WHERE d.community_id = $1)`,
		communityID,
	).Scan(&c.Domains, &c.Tables, &c.Columns)
	if err != nil {
		return ChildCounts{}, fmt.Errorf("count children of community %d: %w", communityID, err)
	}
	return c, nil
}

// DeleteCommunity removes the community row; the declared ON DELETE CASCADE
// actions take its domains, tables and columns with it. Returns false when
// no row matched.
func DeleteCommunity(ctx context.Context, q Querier, id int) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM communities WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete community %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
