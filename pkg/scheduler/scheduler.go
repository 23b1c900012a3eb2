// Package scheduler provides the render-scheduling boundary the presenter
// runtime calls into. The core only requests work; flushing belongs to the
// host loop.
package scheduler

import "sync"

// FrameScheduler accepts re-render requests from presenter bindings.
//
// Repeated requests for the same key within one frame must run the task at
// most once in that frame (coalescing). The task observes whatever state is
// current at flush time, not per-notification snapshots.
type FrameScheduler interface {
	Schedule(key any, task func())
}

// Coalescer is a FrameScheduler that deduplicates requests per key and runs
// them on an explicit Flush, in request order.
type Coalescer struct {
	pending    []pendingTask
	pendingSet map[any]bool
	mu         sync.Mutex

	// OnNeedsFrame is called when a new key is scheduled into an empty or
	// growing frame, signalling the host that a flush should be arranged.
	// This is necessary for on-demand frame scheduling where the host loop
	// is paused until work arrives.
	OnNeedsFrame func()
}

type pendingTask struct {
	key  any
	task func()
}

// NewCoalescer creates an empty coalescing scheduler.
func NewCoalescer() *Coalescer {
	return &Coalescer{}
}

// Schedule records task under key for the next flush. A key already pending
// in the current frame is ignored.
func (c *Coalescer) Schedule(key any, task func()) {
	if task == nil {
		return
	}
	added := func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.pendingSet[key] {
			return false
		}
		if c.pendingSet == nil {
			c.pendingSet = make(map[any]bool)
		}
		c.pendingSet[key] = true
		c.pending = append(c.pending, pendingTask{key: key, task: task})
		return true
	}()

	if added && c.OnNeedsFrame != nil {
		c.OnNeedsFrame()
	}
}

// NeedsWork returns true if any task is pending.
func (c *Coalescer) NeedsWork() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending) > 0
}

// Flush runs all pending tasks in request order. Tasks scheduled during the
// flush are picked up by a further pass before Flush returns.
func (c *Coalescer) Flush() {
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.mu.Unlock()
			return
		}
		pending := c.pending
		c.pending = nil
		clear(c.pendingSet)
		c.mu.Unlock()

		for _, p := range pending {
			p.task()
		}
	}
}

// Immediate is a FrameScheduler that runs every task synchronously with no
// coalescing. Useful for non-UI hosts and examples.
type Immediate struct{}

// Schedule runs task immediately.
func (Immediate) Schedule(key any, task func()) {
	if task != nil {
		task()
	}
}
