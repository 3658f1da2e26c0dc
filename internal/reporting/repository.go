package reporting

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/clearslot/appointments/internal/appointments"
)

// DailySummary aggregates one day of bookings for operational reporting.
type DailySummary struct {
	Date         string         `json:"date"`
	Appointments int            `json:"appointments"`
	ByType       map[string]int `json:"by_type"`
	StartTimes   []string       `json:"start_times"`
	BookedSlots  int            `json:"booked_slots"`
	OpenSlots    int            `json:"open_slots"`
	Utilization  float64        `json:"utilization"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const dailySummaryQuery = `
	SELECT type, COUNT(*), array_agg(to_char(starts_at AT TIME ZONE 'UTC', 'HH24:MI') ORDER BY starts_at)
	FROM appointments
	WHERE starts_at >= $1 AND starts_at < $2
	GROUP BY type
	ORDER BY type`

// DailySummary reports how the given calendar day was booked. Slot counts
// are derived from the per-type durations, so a summary stays correct even
// if durations change between bookings and reporting.
func (r *Repository) DailySummary(ctx context.Context, day time.Time) (*DailySummary, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	rows, err := r.db.QueryContext(ctx, dailySummaryQuery, from, from.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &DailySummary{
		Date:       from.Format("2006-01-02"),
		ByType:     map[string]int{},
		StartTimes: []string{},
	}
	for rows.Next() {
		var (
			typ    string
			count  int
			starts []string
		)
		if err := rows.Scan(&typ, &count, pq.Array(&starts)); err != nil {
			return nil, err
		}
		summary.ByType[typ] = count
		summary.Appointments += count
		summary.StartTimes = append(summary.StartTimes, starts...)

		if t, ok := appointments.ParseType(typ); ok {
			if d, known := t.Duration(); known {
				summary.BookedSlots += count * int(d/(30*time.Minute))
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(summary.StartTimes)
	summary.OpenSlots = appointments.SlotsPerDay - summary.BookedSlots
	summary.Utilization = float64(summary.BookedSlots) / float64(appointments.SlotsPerDay)
	return summary, nil
}
