package attendance

import (
	"context"
	"database/sql"
	"errors"
)

// Repository is the row store behind the service. Implementations:
// PostgresRepository for real deployments, MemoryRepository for dev
// and tests.
type Repository interface {
	// FindOpen returns the newest record for matricNo with no clock-out,
	// or nil when the student is not clocked in.
	FindOpen(ctx context.Context, matricNo string) (*Record, error)
	// Create inserts a new record and returns it with the assigned id.
	Create(ctx context.Context, rec Record) (Record, error)
	// CloseOut sets clock_out on the record and returns the updated row.
	CloseOut(ctx context.Context, id int64, clockOut string) (Record, error)
	// List returns every record, newest first (id descending).
	List(ctx context.Context) ([]Record, error)
	// LastDate returns the date of the newest record, or "" when empty.
	LastDate(ctx context.Context) (string, error)
	// DeleteAll removes every record.
	DeleteAll(ctx context.Context) error
}

// PostgresRepository persists attendance rows in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindOpen returns the newest open record for a student, or nil.
func (r *PostgresRepository) FindOpen(ctx context.Context, matricNo string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, matric_no, name, date, clock_in, clock_out
		FROM attendance
		WHERE matric_no = $1 AND clock_out IS NULL
		ORDER BY id DESC
		LIMIT 1
	`, matricNo)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.MatricNo, &rec.Name, &rec.Date, &rec.ClockIn, &rec.ClockOut); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new record.
func (r *PostgresRepository) Create(ctx context.Context, rec Record) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (matric_no, name, date, clock_in, clock_out)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, rec.MatricNo, rec.Name, rec.Date, rec.ClockIn, rec.ClockOut)
	if err := row.Scan(&rec.ID); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// CloseOut sets clock_out and returns the updated record.
func (r *PostgresRepository) CloseOut(ctx context.Context, id int64, clockOut string) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE attendance
		SET clock_out = $2
		WHERE id = $1
		RETURNING id, matric_no, name, date, clock_in, clock_out
	`, id, clockOut)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.MatricNo, &rec.Name, &rec.Date, &rec.ClockIn, &rec.ClockOut); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns all records, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, matric_no, name, date, clock_in, clock_out
		FROM attendance
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.MatricNo, &rec.Name, &rec.Date, &rec.ClockIn, &rec.ClockOut); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// LastDate returns the date of the newest record, "" when the table is empty.
func (r *PostgresRepository) LastDate(ctx context.Context) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT date FROM attendance ORDER BY id DESC LIMIT 1`)
	var date string
	if err := row.Scan(&date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return date, nil
}

// DeleteAll removes every record.
func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM attendance`)
	return err
}
