package presenter

import "fmt"

// Phase is the lifecycle state of a presenter binding.
//
// The phase follows this state machine:
//
//	Created ──► Initializing ──► Active ◄──► Deactivated
//	                               │              │
//	                               └──► Disposed ◄┘
//
// Disposed is terminal.
type Phase int

const (
	// PhaseCreated means the presenter object is constructed but not bound.
	PhaseCreated Phase = iota
	// PhaseInitializing means the render trigger is attached and the
	// initialize hook is running.
	PhaseInitializing
	// PhaseActive means render-trigger firing is permitted.
	PhaseActive
	// PhaseDeactivated means the owning subtree is temporarily detached.
	// Subscriptions are preserved; renders are suppressed.
	PhaseDeactivated
	// PhaseDisposed means the presenter has been torn down.
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseInitializing:
		return "initializing"
	case PhaseActive:
		return "active"
	case PhaseDeactivated:
		return "deactivated"
	case PhaseDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}
