// Package observe provides the observable subjects the Beacon runtime is
// built from: plain notifiers, value-carrying observables, and wrappers
// that turn asynchronous work into notification sources.
//
// # Notifier
//
// Notifier is the primitive subject. It holds listener callbacks and
// notifies them synchronously, in registration order:
//
//	n := observe.NewNotifier()
//	remove := n.AddListener(func() { fmt.Println("changed") })
//	n.NotifyListeners()
//	remove()
//
// Dispatch is snapshot-based: listeners added or removed during a notify
// pass do not affect that pass. Re-entrant notification is permitted and
// runs depth-first; collapsing redundant renders is the scheduler's job.
//
// # Observables
//
// Observable carries a value and notifies on change:
//
//	counter := observe.NewObservable(0)
//	counter.OnChange(func(v int) { ... })
//	counter.Set(counter.Value() + 1)
//
// # Asynchronous sources
//
// FutureNotifier and StreamNotifier adapt one-shot computations and
// channels into subjects. Background goroutines never touch listeners
// directly; deliveries go through the dispatch function registered with
// RegisterDispatch so they land on the UI turn. Disposing a wrapper
// cancels its goroutine, and a delivery that races disposal degrades to a
// no-op rather than an error.
//
// # Threading
//
// Everything in this package except the asynchronous wrappers assumes a
// single-threaded cooperative host loop and performs no locking.
package observe
