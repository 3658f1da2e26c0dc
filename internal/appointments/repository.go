package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for the schedule. Create is
// all-or-nothing: it revalidates the candidate against the day's
// appointments under a serialization guarantee scoped to that day, so two
// concurrent bookings can never both pass the overlap check against a stale
// snapshot.
type Repository interface {
	Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error)
	ListByDay(ctx context.Context, day time.Time) ([]Appointment, error)
}

// InMemoryRepository keeps the schedule in process memory. A single mutex
// covers check-then-insert for every day, which trivially satisfies the
// per-day serialization guarantee. Useful for development and tests.
type InMemoryRepository struct {
	mu        sync.Mutex
	validator *Validator
	byDay     map[time.Time][]Appointment
}

// NewInMemoryRepository creates an empty in-memory schedule store.
func NewInMemoryRepository(v *Validator) *InMemoryRepository {
	if v == nil {
		v = NewValidator(nil)
	}
	return &InMemoryRepository{
		validator: v,
		byDay:     make(map[time.Time][]Appointment),
	}
}

// Create validates the candidate against its day and persists it when every
// rule passes.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var day time.Time
	if req.StartsAt != nil {
		day = dayStart(*req.StartsAt)
	}
	if verrs := r.validator.ValidateCreate(req, r.byDay[day]); len(verrs) > 0 {
		return nil, verrs
	}

	typ, _ := ParseType(req.Type)
	d, _ := typ.Duration()
	startsAt := req.StartsAt.UTC()
	appt := Appointment{
		ID:          uuid.NewString(),
		StartsAt:    startsAt,
		EndsAt:      startsAt.Add(d),
		Type:        typ,
		PatientName: req.PatientName,
		CreatedAt:   r.validator.clock.Now().UTC(),
	}

	appts := append(r.byDay[day], appt)
	sort.Slice(appts, func(i, j int) bool { return appts[i].StartsAt.Before(appts[j].StartsAt) })
	r.byDay[day] = appts

	out := appt
	return &out, nil
}

// ListByDay returns the day's appointments ascending by start time.
func (r *InMemoryRepository) ListByDay(ctx context.Context, day time.Time) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appts := r.byDay[dayStart(day)]
	out := make([]Appointment, len(appts))
	copy(out, appts)
	return out, nil
}
