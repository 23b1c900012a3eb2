// Package presenter couples presentation logic to a component's render
// callback and manages the lifecycle ordering against the registry and the
// subscription ledger.
//
// # Lifecycle
//
// Embed Base in your presenter and let the binding glue drive it:
//
//	type counterPresenter struct {
//	    presenter.Base
//	    count int
//	}
//
//	func (p *counterPresenter) Initialize() { ... }
//	func (p *counterPresenter) Teardown()   { ... }
//
//	// component mounts:
//	p := &counterPresenter{}
//	presenter.Mount(p, component.RequestRender, sched)
//
//	// component unmounts:
//	presenter.Unmount(p)
//
// Mount binds exactly one render trigger for the presenter's lifetime
// (a second binding attempt fails), runs Initialize, and activates the
// presenter. Unmount runs Teardown, leaves any registry the presenter
// joined via Attach, flushes the subscription ledger, and runs the
// disposer stack, in that order.
//
// # Notification
//
// A presenter is itself an observable subject. Calling Notify notifies its
// listeners, and the implicit self-subscription established at binding
// schedules one coalesced render through the FrameScheduler:
//
//	func (p *counterPresenter) Increment() {
//	    p.count++
//	    p.Notify()
//	}
//
// Deactivate suspends render scheduling while a subtree is reparented;
// subscriptions survive untouched until Activate.
//
// # Subscriptions
//
// ListenTo and Watch subscribe the presenter's render trigger to any
// subject; ListenWith attaches an explicit listener under a caller key.
// All pairs land in the per-presenter Ledger, which deduplicates them and
// guarantees exhaustive teardown on disposal.
package presenter
