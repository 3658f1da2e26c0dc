package appointments

import "time"

// Enumerator produces the open candidate slots for a day and type.
type Enumerator struct {
	validator *Validator
}

// NewEnumerator builds an enumerator backed by the given validator.
func NewEnumerator(v *Validator) *Enumerator {
	if v == nil {
		v = NewValidator(nil)
	}
	return &Enumerator{validator: v}
}

// Available walks the 16 half-hour marks from 09:00 to 16:30 and keeps each
// candidate that passes the booking rules against the day's existing
// appointments. Candidates are generated on fixed ticks, never by stepping a
// float, so the business-hour edges are exact. The result is ordered by
// start time; an unrecognized type yields the empty list.
func (e *Enumerator) Available(day time.Time, typ Type, existing []Appointment) []Slot {
	d, ok := typ.Duration()
	if !ok {
		return []Slot{}
	}

	open := openingTime(day)
	slots := make([]Slot, 0, SlotsPerDay)
	for i := 0; i < SlotsPerDay; i++ {
		start := open.Add(time.Duration(i) * SlotLength)
		if len(e.validator.checkStartsAt(start, typ, existing)) > 0 {
			continue
		}
		slots = append(slots, Slot{StartsAt: start, EndsAt: start.Add(d), Type: typ})
	}
	return slots
}
