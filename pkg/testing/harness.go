package testing

import (
	"testing"

	"github.com/go-drift/beacon/pkg/presenter"
	"github.com/go-drift/beacon/pkg/scheduler"
)

// RecordingScheduler is a coalescing FrameScheduler that counts schedule
// requests, so tests can distinguish "render requested N times" from
// "render ran once".
type RecordingScheduler struct {
	coalescer *scheduler.Coalescer
	requests  int
}

// NewRecordingScheduler creates an empty recording scheduler.
func NewRecordingScheduler() *RecordingScheduler {
	return &RecordingScheduler{coalescer: scheduler.NewCoalescer()}
}

// Schedule records the request and forwards it to the coalescer.
func (s *RecordingScheduler) Schedule(key any, task func()) {
	s.requests++
	s.coalescer.Schedule(key, task)
}

// Requests returns the total number of Schedule calls, including coalesced
// ones.
func (s *RecordingScheduler) Requests() int {
	return s.requests
}

// NeedsWork reports whether a flush would run anything.
func (s *RecordingScheduler) NeedsWork() bool {
	return s.coalescer.NeedsWork()
}

// Flush runs one frame's worth of pending tasks.
func (s *RecordingScheduler) Flush() {
	s.coalescer.Flush()
}

// Harness mounts presenters against a counting render trigger and the
// recording scheduler, standing in for the component-tree binding glue.
type Harness struct {
	t *testing.T

	// Scheduler is the recording scheduler every mounted presenter binds to.
	Scheduler *RecordingScheduler

	renders int
	mounted []presenter.Presenter
}

// NewHarness creates a harness. Mounted presenters are disposed
// automatically at test cleanup.
func NewHarness(t *testing.T) *Harness {
	h := &Harness{t: t, Scheduler: NewRecordingScheduler()}
	t.Cleanup(h.DisposeAll)
	return h
}

// Mount binds p to the harness render trigger and drives it to Active.
// Fails the test on a binding error.
func (h *Harness) Mount(p presenter.Presenter) {
	h.t.Helper()
	if err := presenter.Mount(p, func() { h.renders++ }, h.Scheduler); err != nil {
		h.t.Fatalf("mount failed: %v", err)
	}
	h.mounted = append(h.mounted, p)
}

// Pump flushes the scheduler, running at most one render pass per pending
// presenter.
func (h *Harness) Pump() {
	h.Scheduler.Flush()
}

// Renders returns the number of render passes that have run.
func (h *Harness) Renders() int {
	return h.renders
}

// DisposeAll unmounts every presenter mounted through the harness, in
// reverse mount order. Safe to call more than once.
func (h *Harness) DisposeAll() {
	for i := len(h.mounted) - 1; i >= 0; i-- {
		presenter.Unmount(h.mounted[i])
	}
	h.mounted = nil
}
