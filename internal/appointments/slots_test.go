package appointments

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 6, 1, hour, min, 0, 0, time.UTC)
}

func TestStartingSlot(t *testing.T) {
	tests := []struct {
		hour, min int
		want      int
	}{
		{9, 0, 0},
		{9, 30, 1},
		{12, 0, 6},
		{12, 30, 7},
		{16, 30, 15},
	}

	for _, tt := range tests {
		if got := startingSlot(at(tt.hour, tt.min)); got != tt.want {
			t.Errorf("startingSlot(%02d:%02d) = %d, want %d", tt.hour, tt.min, got, tt.want)
		}
	}
}

func TestSpanCoversInclusiveRange(t *testing.T) {
	// 10:30 initial occupies slots 3, 4, 5.
	m := span(at(10, 30), 90*time.Minute)
	want := slotMask(1<<3 | 1<<4 | 1<<5)
	if m != want {
		t.Errorf("span = %016b, want %016b", m, want)
	}

	// 16:30 checkin occupies only the final slot.
	m = span(at(16, 30), 30*time.Minute)
	if m != 1<<15 {
		t.Errorf("span = %016b, want %016b", m, slotMask(1<<15))
	}
}

func TestOccupiedFlattensSchedule(t *testing.T) {
	existing := []Appointment{
		{StartsAt: at(9, 0), Type: TypeInitial},   // slots 0-2
		{StartsAt: at(12, 0), Type: TypeCheckin},  // slot 6
		{StartsAt: at(15, 0), Type: TypeStandard}, // slots 12-13
	}

	m := occupied(existing)
	want := slotMask(1<<0 | 1<<1 | 1<<2 | 1<<6 | 1<<12 | 1<<13)
	if m != want {
		t.Errorf("occupied = %016b, want %016b", m, want)
	}

	if !m.intersects(span(at(10, 0), 60*time.Minute)) {
		t.Error("expected 10:00 standard to intersect 09:00 initial")
	}
	if m.intersects(span(at(10, 30), 90*time.Minute)) {
		t.Error("expected 10:30 initial (ends 12:00) not to intersect 12:00 checkin")
	}
}

func TestDayBoundaries(t *testing.T) {
	noon := time.Date(2024, 6, 1, 12, 17, 45, 0, time.UTC)

	if got := dayStart(noon); !got.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dayStart = %s", got)
	}
	if got := openingTime(noon); !got.Equal(at(9, 0)) {
		t.Errorf("openingTime = %s", got)
	}
	if got := closingTime(noon); !got.Equal(at(17, 0)) {
		t.Errorf("closingTime = %s", got)
	}
}
