package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps sql.DB for Postgres using pgx.
type DB struct {
	Client *sql.DB
}

// NewDB creates a Postgres connection with sane defaults.
func NewDB(connString string) (*DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return &DB{Client: db}, db.PingContext(context.Background())
}

// EnsureSchema creates the attendance table when it does not exist yet.
// Mirrors the one-table layout: one row per clock-in, nullable clock_out.
func (d *DB) EnsureSchema(ctx context.Context) error {
	_, err := d.Client.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS attendance (
			id        BIGSERIAL PRIMARY KEY,
			matric_no TEXT NOT NULL,
			name      TEXT NOT NULL,
			date      TEXT NOT NULL,
			clock_in  TEXT NOT NULL,
			clock_out TEXT
		)
	`)
	if err != nil {
		return err
	}
	// Open rows are looked up on every clock-in and clock-out.
	_, err = d.Client.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_attendance_open
		ON attendance (matric_no) WHERE clock_out IS NULL
	`)
	return err
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
