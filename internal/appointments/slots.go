package appointments

import "time"

// The calendar is a single resource open 09:00-17:00 UTC, divided into 16
// half-hour slots: slot 0 = 09:00-09:30, slot 15 = 16:30-17:00.
const (
	OpeningHour = 9
	ClosingHour = 17
	SlotLength  = 30 * time.Minute
	SlotsPerDay = (ClosingHour - OpeningHour) * 2
)

// slotMask is a bitmap of occupied slot indices within one business day.
type slotMask uint16

// startingSlot converts a start time to its slot index: half-hours since
// 09:00. Times outside the business window yield out-of-range indices; the
// business-hours rule rejects those before the mask is consulted.
func startingSlot(t time.Time) int {
	return t.Hour()*2 + t.Minute()/30 - OpeningHour*2
}

// span returns the bitmap covering the inclusive slot range occupied by an
// appointment of duration d starting at t.
func span(t time.Time, d time.Duration) slotMask {
	start := startingSlot(t)
	n := int(d / SlotLength)
	var m slotMask
	for i := 0; i < n; i++ {
		idx := start + i
		if idx < 0 || idx >= SlotsPerDay {
			continue
		}
		m |= 1 << idx
	}
	return m
}

// occupied flattens the slot ranges of existing appointments into one mask.
func occupied(existing []Appointment) slotMask {
	var m slotMask
	for _, a := range existing {
		if d, ok := a.Type.Duration(); ok {
			m |= span(a.StartsAt, d)
		}
	}
	return m
}

func (m slotMask) intersects(other slotMask) bool {
	return m&other != 0
}

// dayStart returns midnight UTC of the calendar day containing t.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// openingTime returns 09:00 on the calendar day of t.
func openingTime(t time.Time) time.Time {
	return dayStart(t).Add(OpeningHour * time.Hour)
}

// closingTime returns 17:00 on the calendar day of t.
func closingTime(t time.Time) time.Time {
	return dayStart(t).Add(ClosingHour * time.Hour)
}
