package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxPool abstracts *pgxpool.Pool so tests can substitute pgxmock.
type pgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// rowQuerier is satisfied by both the pool and an open transaction.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	pool      pgxPool
	validator *Validator
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool, v *Validator) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return newPostgresRepositoryWithPool(pool, v)
}

func newPostgresRepositoryWithPool(pool pgxPool, v *Validator) *PostgresRepository {
	if v == nil {
		v = NewValidator(nil)
	}
	return &PostgresRepository{pool: pool, validator: v}
}

// Create books the candidate inside one transaction. A pg_advisory_xact_lock
// keyed on the calendar day serializes concurrent creates for the same day,
// so the overlap check always runs against the committed schedule.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointments: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var day time.Time
	if req.StartsAt != nil {
		day = dayStart(*req.StartsAt)
	}

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, day.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("appointments: day lock: %w", err)
	}

	sameDay, err := listDay(ctx, tx, day)
	if err != nil {
		return nil, err
	}
	if verrs := r.validator.ValidateCreate(req, sameDay); len(verrs) > 0 {
		return nil, verrs
	}

	typ, _ := ParseType(req.Type)
	d, _ := typ.Duration()
	startsAt := req.StartsAt.UTC()
	appt := &Appointment{
		ID:          uuid.NewString(),
		StartsAt:    startsAt,
		EndsAt:      startsAt.Add(d),
		Type:        typ,
		PatientName: req.PatientName,
	}

	query := `
		INSERT INTO appointments (id, starts_at, type, patient_name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := tx.QueryRow(ctx, query, appt.ID, appt.StartsAt, string(appt.Type), appt.PatientName).Scan(&appt.CreatedAt); err != nil {
		return nil, fmt.Errorf("appointments: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("appointments: commit: %w", err)
	}
	return appt, nil
}

// ListByDay returns the day's appointments ascending by start time.
func (r *PostgresRepository) ListByDay(ctx context.Context, day time.Time) ([]Appointment, error) {
	return listDay(ctx, r.pool, day)
}

const listByDayQuery = `
	SELECT id, starts_at, type, patient_name, created_at
	FROM appointments
	WHERE starts_at >= $1 AND starts_at < $2
	ORDER BY starts_at
`

func listDay(ctx context.Context, q rowQuerier, day time.Time) ([]Appointment, error) {
	day = dayStart(day)
	rows, err := q.Query(ctx, listByDayQuery, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("appointments: select day: %w", err)
	}
	defer rows.Close()

	out := []Appointment{}
	for rows.Next() {
		var a Appointment
		var typ string
		if err := rows.Scan(&a.ID, &a.StartsAt, &typ, &a.PatientName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("appointments: scan: %w", err)
		}
		a.StartsAt = a.StartsAt.UTC()
		a.Type = Type(typ)
		if d, ok := a.Type.Duration(); ok {
			a.EndsAt = a.StartsAt.Add(d)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
