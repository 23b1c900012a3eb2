package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	c := NewFakeClock()
	start := c.Now()

	c.Advance(90 * time.Second)
	if got := c.Now().Sub(start); got != 90*time.Second {
		t.Errorf("expected 90s elapsed, got %v", got)
	}
}

func TestFakeClock_Set(t *testing.T) {
	c := NewFakeClock()
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	c.Set(at)
	if !c.Now().Equal(at) {
		t.Errorf("expected %v, got %v", at, c.Now())
	}
}
