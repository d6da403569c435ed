package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opencatalog/excel-ingest/models"
)

// DB wraps the connection pool. It is constructed once at process start and
// passed by reference into whatever needs database access; there is no
// package-level pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the target database and verifies it with a
// ping. An unreachable engine is fatal to the caller; nothing here retries.
func Connect(ctx context.Context, url string) (*DB, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// EnsureDatabase creates the target database when it does not exist yet. It
// connects to the postgres maintenance database, so it works before the
// target exists. Safe to call repeatedly.
func EnsureDatabase(ctx context.Context, maintenanceURL, name string) error {
	conn, err := pgx.Connect(ctx, maintenanceURL)
	if err != nil {
		return fmt.Errorf("connect maintenance database: %w", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	var exists bool
	err = conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database %q: %w", name, err)
	}
	if exists {
		return nil
	}
	// CREATE DATABASE cannot be parameterized; quote the identifier.
	quoted := `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+quoted); err != nil {
		return fmt.Errorf("create database %q: %w", name, err)
	}
	return nil
}

// Init creates all catalog tables that do not exist yet. Idempotent, so the
// ingestion handler can call it on every invocation.
func (db *DB) Init(ctx context.Context) error {
	for _, stmt := range models.CreateStatements() {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// WithSession acquires a dedicated connection from the pool, hands it to fn
// and releases it on every exit path. Each call gets its own session; nothing
// is shared between concurrent callers.
func (db *DB) WithSession(ctx context.Context, fn func(models.Querier) error) error {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()
	return fn(conn)
}

// Close tears down the pool. Call on application shutdown.
func (db *DB) Close() {
	db.pool.Close()
}
