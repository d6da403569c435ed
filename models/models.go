package models

import "time"

// The catalog schema is a strict ownership tree: a Community owns Domains,
// a Domain owns DataTables, a DataTable owns DataColumns. CodeSets sit next
// to the tree and are referenced (not owned) by columns; CodeValues belong
// to their CodeSet. Deleting a parent removes all owned children through the
// declared foreign-key actions.
//
// Community is the only entity with a generated integer key; every other
// entity uses a caller-supplied string ID. The mix is inherited from the
// upstream data model and kept as-is.

// Community is the top-level grouping.
type Community struct {
	ID          int
	Name        string
	Description *string
}

// Domain belongs to exactly one Community.
type Domain struct {
	ID          string
	Name        string
	CommunityID int
}

// DataTable belongs to exactly one Domain.
type DataTable struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DomainID    string
}

// DataColumn belongs to exactly one DataTable and may reference a CodeSet.
type DataColumn struct {
	ID          string
	Name        string
	Description *string
	DataType    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DataTableID string
	CodeSetID   *string
}

// CodeSet is a named enumeration referenced by columns.
type CodeSet struct {
	ID   string
	Name string
}

// CodeValue is one entry of a CodeSet.
type CodeValue struct {
	ID        string
	Code      string
	Label     string
	CodeSetID string
}
