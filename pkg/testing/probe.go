package testing

import "github.com/go-drift/beacon/pkg/observe"

// Probe is a listener that counts its invocations, for asserting on
// notification delivery.
type Probe struct {
	calls int
}

// NewProbe creates a probe with zero calls.
func NewProbe() *Probe {
	return &Probe{}
}

// Fn returns the callback to register on a subject.
func (p *Probe) Fn() func() {
	return func() { p.calls++ }
}

// Calls returns how many times the probe fired.
func (p *Probe) Calls() int {
	return p.calls
}

// Reset zeroes the call count.
func (p *Probe) Reset() {
	p.calls = 0
}

// PoisonedSubject is a subject whose unsubscribe functions panic, for
// exercising best-effort ledger teardown.
type PoisonedSubject struct {
	observe.Notifier
}

// AddListener registers the callback but returns a remover that panics.
func (s *PoisonedSubject) AddListener(fn func()) (remove func()) {
	s.Notifier.AddListener(fn)
	return func() {
		panic("poisoned unsubscribe")
	}
}
