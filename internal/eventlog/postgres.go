package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	postgresDriver = "pgx"
	// Default DSN allows local development without configuration.
	defaultPostgresDSN = "postgres://localhost/epicore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// PostgresLog appends records to a PostgreSQL server via the pgx stdlib
// driver.
type PostgresLog struct {
	db *sql.DB
}

// NewPostgresLog opens a Postgres-backed log using the provided DSN (falls
// back to defaultPostgresDSN) and ensures the events table exists.
func NewPostgresLog(dsn string) (*PostgresLog, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	openMu.Lock()
	db, err := sqlOpen(postgresDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS infection_events (
		id BIGSERIAL PRIMARY KEY,
		day INTEGER NOT NULL,
		disease_id INTEGER NOT NULL,
		host_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		line TEXT NOT NULL DEFAULT '',
		recorded_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return &PostgresLog{db: db}, nil
}

// Append implements Log.
func (l *PostgresLog) Append(ctx context.Context, rec Record) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO infection_events(day, disease_id, host_id, kind, line, recorded_at) VALUES($1,$2,$3,$4,$5,$6)`,
		rec.Day, rec.DiseaseID, rec.HostID, rec.Kind, rec.Line, rec.RecordedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Day implements Log.
func (l *PostgresLog) Day(ctx context.Context, day int) ([]Record, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT day, disease_id, host_id, kind, line, recorded_at FROM infection_events WHERE day = $1 ORDER BY id`, day)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Day, &rec.DiseaseID, &rec.HostID, &rec.Kind, &rec.Line, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (l *PostgresLog) DB() *sql.DB { return l.db }

// Close implements Log.
func (l *PostgresLog) Close() error { return l.db.Close() }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore
// function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
