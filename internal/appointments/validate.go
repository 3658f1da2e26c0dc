package appointments

import (
	"strings"
	"time"

	"github.com/clearslot/appointments/pkg/clock"
)

// BookingLeadTime is the minimum notice required for a new booking.
const BookingLeadTime = 2 * time.Hour

// Stable message vocabulary. These strings are part of the API contract and
// asserted by clients; do not reword them.
const (
	msgUnrecognizedType = "Type is unrecognized"
	msgMissingStartsAt  = "Starts at can't be blank"
	msgMissingType      = "Type can't be blank"
	msgMissingPatient   = "Patient name can't be blank"
	msgConflict         = "Starts at conflicts with an existing appointment"
	msgBeforeOpening    = "Starts at is before 9 AM"
	msgPastClosing      = "Starts at is too late in the day for the type of appointment"
	msgTooSoon          = "Starts at must be more than 2 hours from now"
	msgNotOnHalfHour    = "Starts at must be on the hour or half-hour"
)

// Validator checks candidate appointments against the booking rules. It is
// stateless apart from the injected clock, which the lead-time rule reads.
type Validator struct {
	clock clock.Clock
}

// NewValidator builds a validator; a nil clock falls back to the system
// clock.
func NewValidator(c clock.Clock) *Validator {
	if c == nil {
		c = clock.Real{}
	}
	return &Validator{clock: c}
}

// ValidateCreate runs the full booking pipeline for a candidate against its
// same-day appointments. Every failing rule contributes one error; nil means
// the candidate is bookable. An unrecognized type short-circuits the
// start-time rules because the duration is undefined without it, but
// presence failures are still reported.
func (v *Validator) ValidateCreate(req *CreateAppointmentRequest, sameDay []Appointment) ValidationErrors {
	var errs ValidationErrors

	typ, typeKnown := ParseType(req.Type)
	if req.Type != "" && !typeKnown {
		errs = append(errs, ValidationError{Field: "type", Rule: RuleUnrecognizedType, Message: msgUnrecognizedType})
	}
	if req.StartsAt == nil {
		errs = append(errs, ValidationError{Field: "starts_at", Rule: RuleMissingField, Message: msgMissingStartsAt})
	}
	if req.Type == "" {
		errs = append(errs, ValidationError{Field: "type", Rule: RuleMissingField, Message: msgMissingType})
	}
	if strings.TrimSpace(req.PatientName) == "" {
		errs = append(errs, ValidationError{Field: "patient_name", Rule: RuleMissingField, Message: msgMissingPatient})
	}
	if !typeKnown || req.StartsAt == nil {
		return errs
	}
	return append(errs, v.checkStartsAt(*req.StartsAt, typ, sameDay)...)
}

// checkStartsAt evaluates the start-time rules shared by the creation path
// and availability enumeration: overlap, business hours, lead time,
// alignment. The caller guarantees typ is recognized.
func (v *Validator) checkStartsAt(startsAt time.Time, typ Type, sameDay []Appointment) ValidationErrors {
	var errs ValidationErrors
	startsAt = startsAt.UTC()
	d, _ := typ.Duration()
	endsAt := startsAt.Add(d)

	if span(startsAt, d).intersects(occupied(sameDay)) {
		errs = append(errs, ValidationError{Field: "starts_at", Rule: RuleConflict, Message: msgConflict})
	}
	if startsAt.Before(openingTime(startsAt)) {
		errs = append(errs, ValidationError{Field: "starts_at", Rule: RuleBeforeOpening, Message: msgBeforeOpening})
	} else if endsAt.After(closingTime(startsAt)) {
		// Ending exactly at closing is fine; only spilling past 17:00 fails.
		errs = append(errs, ValidationError{Field: "starts_at", Rule: RuleExtendsPastClosing, Message: msgPastClosing})
	}
	if startsAt.Before(v.clock.Now().UTC().Add(BookingLeadTime)) {
		errs = append(errs, ValidationError{Field: "starts_at", Rule: RuleTooSoon, Message: msgTooSoon})
	}
	if m := startsAt.Minute(); m != 0 && m != 30 {
		errs = append(errs, ValidationError{Field: "starts_at", Rule: RuleNotOnHalfHour, Message: msgNotOnHalfHour})
	}
	return errs
}
