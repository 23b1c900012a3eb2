package scheduler

import "testing"

func TestCoalescer_DedupsPerKey(t *testing.T) {
	c := NewCoalescer()
	runs := 0
	for i := 0; i < 3; i++ {
		c.Schedule("render", func() { runs++ })
	}

	c.Flush()

	if runs != 1 {
		t.Errorf("expected 1 run for 3 requests, got %d", runs)
	}
}

func TestCoalescer_DistinctKeysRunInOrder(t *testing.T) {
	c := NewCoalescer()
	var order []string
	c.Schedule("a", func() { order = append(order, "a") })
	c.Schedule("b", func() { order = append(order, "b") })
	c.Schedule("a", func() { order = append(order, "dup") })

	c.Flush()

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("expected [a b], got %v", order)
	}
}

func TestCoalescer_RescheduleDuringFlush(t *testing.T) {
	c := NewCoalescer()
	runs := 0
	c.Schedule("k", func() {
		runs++
		if runs == 1 {
			// Work scheduled during a flush runs before Flush returns.
			c.Schedule("k", func() { runs++ })
		}
	})

	c.Flush()

	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
	if c.NeedsWork() {
		t.Error("expected no pending work after flush")
	}
}

func TestCoalescer_OnNeedsFrame(t *testing.T) {
	c := NewCoalescer()
	frames := 0
	c.OnNeedsFrame = func() { frames++ }

	c.Schedule("a", func() {})
	c.Schedule("a", func() {}) // coalesced, no new frame signal
	c.Schedule("b", func() {})

	if frames != 2 {
		t.Errorf("expected 2 frame signals, got %d", frames)
	}
}

func TestImmediate_RunsSynchronously(t *testing.T) {
	ran := false
	Immediate{}.Schedule("k", func() { ran = true })
	if !ran {
		t.Error("expected task to run immediately")
	}
	Immediate{}.Schedule("k", nil) // nil task is ignored
}
