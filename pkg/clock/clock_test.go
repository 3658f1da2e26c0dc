package clock

import (
	"testing"
	"time"
)

func TestFixedReturnsSameInstant(t *testing.T) {
	instant := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	c := Fixed{T: instant}

	if got := c.Now(); !got.Equal(instant) {
		t.Errorf("expected %s, got %s", instant, got)
	}
	if got := c.Now(); !got.Equal(instant) {
		t.Errorf("expected repeated calls to return %s, got %s", instant, got)
	}
}

func TestRealIsUTC(t *testing.T) {
	now := Real{}.Now()
	if now.Location() != time.UTC {
		t.Errorf("expected UTC, got %s", now.Location())
	}
	if time.Since(now) > time.Minute {
		t.Errorf("Real clock too far from system time: %s", now)
	}
}
