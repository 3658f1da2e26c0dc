// Package appointments implements the slot-scheduling engine for a
// single-resource calendar: type/duration rules, half-hour slot math,
// conflict validation, availability enumeration, and the schedule store.
package appointments

import (
	"strings"
	"time"
)

// Type enumerates the supported appointment types.
type Type string

const (
	TypeInitial  Type = "initial"
	TypeStandard Type = "standard"
	TypeCheckin  Type = "checkin"
)

// durations maps each recognized type to its fixed length. Process-wide
// constant; never mutated.
var durations = map[Type]time.Duration{
	TypeInitial:  90 * time.Minute,
	TypeStandard: 60 * time.Minute,
	TypeCheckin:  30 * time.Minute,
}

// ParseType normalizes a wire value into a Type. The legacy value "checking"
// is accepted as checkin for compatibility with older clients.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if t == "checking" {
		t = TypeCheckin
	}
	_, ok := durations[t]
	return t, ok
}

// Duration returns the fixed length for the type and whether it is recognized.
func (t Type) Duration() (time.Duration, bool) {
	d, ok := durations[t]
	return d, ok
}

// Appointment is a booked interval on the calendar. EndsAt is derived from
// StartsAt and Type and is never stored as authoritative.
type Appointment struct {
	ID          string    `json:"id"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Type        Type      `json:"type"`
	PatientName string    `json:"patient_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateAppointmentRequest is the candidate for booking an appointment.
// StartsAt is a pointer so an absent field is distinguishable from a zero
// time.
type CreateAppointmentRequest struct {
	StartsAt    *time.Time `json:"starts_at"`
	Type        string     `json:"type"`
	PatientName string     `json:"patient_name"`
}

// Slot is an open candidate interval offered to callers. It carries no
// identity or patient name because nothing has been booked yet.
type Slot struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Type     Type      `json:"type"`
}
