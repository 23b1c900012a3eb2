package observe

// Listenable is satisfied by anything that can notify registered callbacks.
// AddListener returns an unsubscribe function that removes the callback.
type Listenable interface {
	AddListener(fn func()) (remove func())
}

// Disposable is satisfied by objects that require explicit cleanup.
type Disposable interface {
	Dispose()
}

// listenerEntry pairs a registered callback with its identity.
type listenerEntry struct {
	id int
	fn func()
}

// Notifier is the basic observable subject: it holds zero or more listener
// callbacks and can notify them.
//
// NotifyListeners invokes every currently-registered listener synchronously,
// in registration order, on the calling turn. The listener list is
// snapshotted before dispatch, so listeners added or removed during a notify
// pass do not affect that pass. Re-entrant NotifyListeners calls run
// depth-first to completion; coalescing redundant work is the render
// scheduler's job, not the subject's.
//
// Notifier is NOT thread-safe. It must only be used from the UI turn; to
// notify from a background goroutine, deliver through a dispatch function
// (see FutureNotifier and StreamNotifier).
type Notifier struct {
	listeners []listenerEntry
	nextID    int
	disposed  bool
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers a callback that fires on every notification.
// Returns an unsubscribe function. The unsubscribe function is idempotent.
// After Dispose, AddListener returns a no-op remover without registering.
func (n *Notifier) AddListener(fn func()) (remove func()) {
	if n.disposed || fn == nil {
		return func() {}
	}
	id := n.nextID
	n.nextID++
	n.listeners = append(n.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		n.removeByID(id)
	}
}

func (n *Notifier) removeByID(id int) {
	for i, entry := range n.listeners {
		if entry.id == id {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// NotifyListeners invokes all registered listeners in registration order.
// Calling NotifyListeners on a disposed notifier is a silent no-op: a
// disposed subject is a legitimate target of an in-flight asynchronous
// resolution.
func (n *Notifier) NotifyListeners() {
	if n.disposed || len(n.listeners) == 0 {
		return
	}
	// Snapshot so add/remove during the pass does not affect it.
	snapshot := make([]listenerEntry, len(n.listeners))
	copy(snapshot, n.listeners)
	for _, entry := range snapshot {
		entry.fn()
	}
}

// ListenerCount returns the number of currently-registered listeners.
func (n *Notifier) ListenerCount() int {
	return len(n.listeners)
}

// IsDisposed returns true if Dispose has been called.
func (n *Notifier) IsDisposed() bool {
	return n.disposed
}

// Dispose drops all listeners and turns future notifications into no-ops.
// Safe to call more than once.
func (n *Notifier) Dispose() {
	n.disposed = true
	n.listeners = nil
}

// Merged relays notifications from several sources through one notifier.
// Notifying any source notifies the merged notifier's listeners.
type Merged struct {
	Notifier
	removers []func()
}

// NewMerged creates a notifier that relays every notification from sources.
func NewMerged(sources ...Listenable) *Merged {
	m := &Merged{}
	for _, source := range sources {
		if source == nil {
			continue
		}
		m.removers = append(m.removers, source.AddListener(m.NotifyListeners))
	}
	return m
}

// Dispose detaches from all sources and disposes the underlying notifier.
func (m *Merged) Dispose() {
	for _, remove := range m.removers {
		remove()
	}
	m.removers = nil
	m.Notifier.Dispose()
}
