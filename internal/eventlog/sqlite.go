package eventlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteLog appends records to an embedded SQLite file.
type SQLiteLog struct {
	db   *sql.DB
	path string
}

// NewSQLiteLog opens (or creates) the log database at path; an empty path
// defaults to ./epicore.db.
func NewSQLiteLog(path string) (*SQLiteLog, error) {
	if path == "" {
		path = "epicore.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS infection_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		disease_id INTEGER NOT NULL,
		host_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		line TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return &SQLiteLog{db: db, path: path}, nil
}

// Append implements Log.
func (l *SQLiteLog) Append(ctx context.Context, rec Record) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO infection_events(day, disease_id, host_id, kind, line, recorded_at) VALUES(?,?,?,?,?,?)`,
		rec.Day, rec.DiseaseID, rec.HostID, rec.Kind, rec.Line, rec.RecordedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Day implements Log.
func (l *SQLiteLog) Day(ctx context.Context, day int) ([]Record, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT day, disease_id, host_id, kind, line, recorded_at FROM infection_events WHERE day = ? ORDER BY id`, day)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanRecords(rows)
}

// Path returns the configured database path.
func (l *SQLiteLog) Path() string { return l.path }

// DB exposes the underlying sql.DB for integration testing hooks.
func (l *SQLiteLog) DB() *sql.DB { return l.db }

// Close implements Log.
func (l *SQLiteLog) Close() error { return l.db.Close() }

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var rec Record
		var at string
		if err := rows.Scan(&rec.Day, &rec.DiseaseID, &rec.HostID, &rec.Kind, &rec.Line, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			rec.RecordedAt = t
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}
