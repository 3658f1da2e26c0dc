package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/clearslot/appointments/pkg/clock"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	t.Cleanup(mock.Close)

	repo := newPostgresRepositoryWithPool(mock, NewValidator(clock.Fixed{T: repoNow}))
	return mock, repo
}

func emptyDayRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "starts_at", "type", "patient_name", "created_at"})
}

func TestPostgresCreateFlow(t *testing.T) {
	mock, repo := newMockRepo(t)
	startsAt := repoDay.Add(10 * time.Hour)
	createdAt := repoNow

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs("2024-06-01").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT id, starts_at, type, patient_name, created_at").
		WithArgs(repoDay, repoDay.Add(24*time.Hour)).
		WillReturnRows(emptyDayRows())
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), startsAt, "standard", "Alice").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))
	mock.ExpectCommit()

	appt, err := repo.Create(context.Background(), reqAt(startsAt, "standard", "Alice"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if appt.ID == "" {
		t.Error("expected assigned ID")
	}
	if !appt.CreatedAt.Equal(createdAt) {
		t.Errorf("created_at = %s, want %s", appt.CreatedAt, createdAt)
	}
	if !appt.EndsAt.Equal(startsAt.Add(60 * time.Minute)) {
		t.Errorf("ends_at = %s", appt.EndsAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresCreateConflictRollsBack(t *testing.T) {
	mock, repo := newMockRepo(t)
	startsAt := repoDay.Add(13 * time.Hour)

	existing := emptyDayRows().
		AddRow("b2f3a6c0-0000-0000-0000-000000000001", repoDay.Add(14*time.Hour), "initial", "Alice", repoNow)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs("2024-06-01").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT id, starts_at, type, patient_name, created_at").
		WithArgs(repoDay, repoDay.Add(24*time.Hour)).
		WillReturnRows(existing)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), reqAt(startsAt, "initial", "Bob"))
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 1 || verrs[0].Rule != RuleConflict {
		t.Fatalf("unexpected validation errors %v", verrs.Messages())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresListByDay(t *testing.T) {
	mock, repo := newMockRepo(t)

	rows := emptyDayRows().
		AddRow("b2f3a6c0-0000-0000-0000-000000000001", repoDay.Add(9*time.Hour), "initial", "Alice", repoNow).
		AddRow("b2f3a6c0-0000-0000-0000-000000000002", repoDay.Add(12*time.Hour), "standard", "Bob", repoNow)

	mock.ExpectQuery("SELECT id, starts_at, type, patient_name, created_at").
		WithArgs(repoDay, repoDay.Add(24*time.Hour)).
		WillReturnRows(rows)

	appts, err := repo.ListByDay(context.Background(), repoDay)
	if err != nil {
		t.Fatalf("ListByDay returned error: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}
	if appts[0].Type != TypeInitial || appts[1].Type != TypeStandard {
		t.Errorf("unexpected types %s, %s", appts[0].Type, appts[1].Type)
	}
	if !appts[0].EndsAt.Equal(repoDay.Add(10*time.Hour + 30*time.Minute)) {
		t.Errorf("derived ends_at = %s", appts[0].EndsAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
