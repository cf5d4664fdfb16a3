package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/envsentry/envsentry/pkg/reading"
)

// sqliteTimeLayout is fixed width with zero-padded nanoseconds, so the
// lexical ORDER BY on the timestamp column matches chronological order.
// RFC3339Nano would not: it trims trailing zeros, and a whole-second
// value ("...05Z") sorts after a fractional one ("...05.5Z") in the same
// second. Timestamps are stored in UTC.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000000"

// SQLiteStore implements the reading store on a local SQLite file. It is
// the default backend: the predictor and the dashboard point at the same
// database file, which gives per-query read-committed snapshots without
// running a separate database server.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the sensor_data schema exists. WAL mode keeps concurrent
// dashboard reads from blocking predictor writes.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sensor_data (
		id TEXT PRIMARY KEY,
		temperature REAL NOT NULL,
		humidity REAL NOT NULL,
		sound_volume REAL NOT NULL,
		prediction INTEGER NOT NULL,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sensor_data_timestamp ON sensor_data(timestamp);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Append inserts one reading.
func (s *SQLiteStore) Append(ctx context.Context, r reading.Reading) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO sensor_data (id, temperature, humidity, sound_volume, prediction, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Temperature, r.Humidity, r.SoundVolume, r.Prediction,
		r.Timestamp.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// All returns every stored reading in insertion-rowid order.
func (s *SQLiteStore) All(ctx context.Context) ([]reading.Reading, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, temperature, humidity, sound_volume, prediction, timestamp FROM sensor_data`)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	var out []reading.Reading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}

	return out, nil
}

// Latest returns the reading with the greatest timestamp.
func (s *SQLiteStore) Latest(ctx context.Context) (reading.Reading, bool, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, temperature, humidity, sound_volume, prediction, timestamp
		 FROM sensor_data ORDER BY timestamp DESC, rowid DESC LIMIT 1`)

	r, err := scanReading(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reading.Reading{}, false, nil
	}
	if err != nil {
		return reading.Reading{}, false, err
	}
	return r, true, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(row rowScanner) (reading.Reading, error) {
	var (
		r  reading.Reading
		id string
		ts string
	)
	if err := row.Scan(&id, &r.Temperature, &r.Humidity, &r.SoundVolume, &r.Prediction, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reading.Reading{}, err
		}
		return reading.Reading{}, fmt.Errorf("scan reading: %w", err)
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return reading.Reading{}, fmt.Errorf("parse reading id %q: %w", id, err)
	}
	r.ID = uid

	t, err := time.Parse(sqliteTimeLayout, ts)
	if err != nil {
		return reading.Reading{}, fmt.Errorf("parse reading timestamp %q: %w", ts, err)
	}
	r.Timestamp = t

	return r, nil
}
