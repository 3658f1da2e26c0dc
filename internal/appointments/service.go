package appointments

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clearslot/appointments/internal/observability/metrics"
	"github.com/clearslot/appointments/pkg/logging"
)

var tracer = otel.Tracer("clearslot.internal.appointments")

// Notifier receives a callback after a booking is committed.
type Notifier interface {
	BookingConfirmed(ctx context.Context, appt *Appointment)
}

// Service coordinates the booking flow: persistence, the day-schedule cache,
// metrics, and confirmation notifications.
type Service struct {
	repo     Repository
	enum     *Enumerator
	cache    *ScheduleCache
	metrics  *metrics.BookingMetrics
	notifier Notifier
	logger   *logging.Logger
}

// NewService constructs the booking service. Cache, metrics, and notifier
// are optional.
func NewService(repo Repository, enum *Enumerator, cache *ScheduleCache, m *metrics.BookingMetrics, notifier Notifier, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if enum == nil {
		enum = NewEnumerator(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:     repo,
		enum:     enum,
		cache:    cache,
		metrics:  m,
		notifier: notifier,
		logger:   logger,
	}
}

// Book creates an appointment. On success the day's cache entry is dropped
// and the notifier is informed; validation failures are returned as
// ValidationErrors and never persist anything.
func (s *Service) Book(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.book")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.type", req.Type))

	appt, err := s.repo.Create(ctx, req)
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				s.metrics.ObserveValidationFailure(string(ve.Rule))
			}
			s.metrics.ObserveBooking(req.Type, "rejected")
			s.logger.Info("booking rejected", "type", req.Type, "reasons", verrs.Messages())
			return nil, verrs
		}
		span.RecordError(err)
		s.metrics.ObserveBooking(req.Type, "error")
		return nil, err
	}

	s.cache.Invalidate(ctx, appt.StartsAt)
	s.metrics.ObserveBooking(string(appt.Type), "created")
	s.logger.Info("appointment booked",
		"id", appt.ID,
		"type", appt.Type,
		"starts_at", appt.StartsAt,
		"patient", appt.PatientName,
	)
	if s.notifier != nil {
		s.notifier.BookingConfirmed(ctx, appt)
	}
	return appt, nil
}

// Schedule returns the day's appointments ascending by start time, served
// from the cache when warm.
func (s *Service) Schedule(ctx context.Context, day time.Time) ([]Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.schedule")
	defer span.End()

	if appts, ok := s.cache.Get(ctx, day); ok {
		return appts, nil
	}
	appts, err := s.repo.ListByDay(ctx, day)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.cache.Set(ctx, day, appts)
	return appts, nil
}

// Availability enumerates the open slots for a day and type. An unrecognized
// type yields the empty list, matching the booking pipeline where every
// candidate would fail.
func (s *Service) Availability(ctx context.Context, day time.Time, typeParam string) ([]Slot, error) {
	ctx, span := tracer.Start(ctx, "appointments.availability")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.type", typeParam))

	start := time.Now()
	existing, err := s.Schedule(ctx, day)
	if err != nil {
		return nil, err
	}

	typ, ok := ParseType(typeParam)
	if !ok {
		return []Slot{}, nil
	}
	slots := s.enum.Available(day, typ, existing)
	s.metrics.ObserveAvailabilityLatency(string(typ), time.Since(start).Seconds())
	return slots, nil
}
