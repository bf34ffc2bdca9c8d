package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists event streams in a SQLite database. Use the DSN
// ":memory:" for an ephemeral store.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	stream_id  TEXT    NOT NULL,
	version    INTEGER NOT NULL,
	id         TEXT    NOT NULL,
	type       TEXT    NOT NULL,
	data       BLOB,
	created_at TEXT    NOT NULL,
	PRIMARY KEY (stream_id, version)
);
CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);
`

// NewSQLiteStore opens (and if needed initializes) a SQLite-backed store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("eventstore: open sqlite: %w", err)
	}
	// The store serializes its own writes; one connection avoids
	// SQLITE_BUSY on concurrent appends.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("eventstore: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return s.StreamVersion(ctx, streamID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, err
	}
	defer tx.Rollback()

	current, err := streamVersionTx(ctx, tx, streamID)
	if err != nil {
		return -1, err
	}
	if current != expectedVersion {
		return current, ErrConcurrencyConflict
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (stream_id, version, id, type, data, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return -1, err
	}
	defer stmt.Close()

	version := current
	for _, e := range events {
		version++
		e.StreamID = streamID
		e.Version = version
		if _, err := stmt.ExecContext(ctx, streamID, version, e.ID, e.Type, e.Data,
			e.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return -1, err
		}
	}

	if err := tx.Commit(); err != nil {
		return -1, err
	}
	return version, nil
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stream_id, version, id, type, data, created_at
		 FROM events WHERE stream_id = ? AND version >= ? ORDER BY version`,
		streamID, fromVersion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ReadAll implements Store.
func (s *SQLiteStore) ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error) {
	query := `SELECT stream_id, version, id, type, data, created_at FROM events`
	var conds []string
	var args []any
	if filter.StreamID != "" {
		conds = append(conds, "stream_id = ?")
		args = append(args, filter.StreamID)
	}
	if len(filter.Types) > 0 {
		placeholders := strings.Repeat("?,", len(filter.Types))
		conds = append(conds, fmt.Sprintf("type IN (%s)", placeholders[:len(placeholders)-1]))
		for _, t := range filter.Types {
			args = append(args, t)
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, stream_id, version"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// StreamVersion implements Store. Returns -1 for an unknown stream.
func (s *SQLiteStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream_id = ?`, streamID).Scan(&version)
	if err != nil {
		return -1, err
	}
	if !version.Valid {
		return -1, nil
	}
	return int(version.Int64), nil
}

// DeleteStream implements Store.
func (s *SQLiteStore) DeleteStream(ctx context.Context, streamID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE stream_id = ?`, streamID)
	return err
}

// Close implements Store.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func streamVersionTx(ctx context.Context, tx *sql.Tx, streamID string) (int, error) {
	var version sql.NullInt64
	err := tx.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream_id = ?`, streamID).Scan(&version)
	if err != nil {
		return -1, err
	}
	if !version.Valid {
		return -1, nil
	}
	return int(version.Int64), nil
}

func scanEvents(rows *sql.Rows) ([]*Event, error) {
	var out []*Event
	for rows.Next() {
		var e Event
		var created string
		if err := rows.Scan(&e.StreamID, &e.Version, &e.ID, &e.Type, &e.Data, &created); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("eventstore: bad timestamp %q: %w", created, err)
		}
		e.CreatedAt = ts
		out = append(out, &e)
	}
	return out, rows.Err()
}

var _ Store = (*SQLiteStore)(nil)
