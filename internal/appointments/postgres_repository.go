package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the slice of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// newPostgresRepositoryWithQuerier allows injecting mocks for tests.
func newPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	return &PostgresRepository{db: q}
}

// Create inserts the appointment only if the slot is still free. The
// conditional insert rides on the UNIQUE (date, time) constraint, so two
// concurrent bookings of one slot cannot both succeed; the loser gets
// ErrSlotTaken instead of a duplicate row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	id := uuid.New()
	query := `
		INSERT INTO appointments (id, name, phone, date, time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date, time) DO NOTHING
		RETURNING created_at
	`
	appt := &Appointment{
		ID:    id.String(),
		Name:  req.Name,
		Phone: req.Phone,
		Date:  req.Date,
		Time:  req.Time,
	}
	err := r.db.QueryRow(ctx, query, id, req.Name, req.Phone, req.Date, req.Time).Scan(&appt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}
	return appt, nil
}

// BookedTimes returns every time already booked for the date.
func (r *PostgresRepository) BookedTimes(ctx context.Context, date string) ([]string, error) {
	query := `SELECT time FROM appointments WHERE date = $1`
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("appointments: select booked times failed: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("appointments: scan booked time failed: %w", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: iterate booked times failed: %w", err)
	}
	return times, nil
}
