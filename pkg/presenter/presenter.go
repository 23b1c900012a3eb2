package presenter

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-drift/beacon/pkg/errors"
	"github.com/go-drift/beacon/pkg/observe"
	"github.com/go-drift/beacon/pkg/registry"
	"github.com/go-drift/beacon/pkg/scheduler"
)

// Presenter is satisfied by any struct that embeds Base. The package
// entry points accept Presenter so callers can pass their presenter
// directly.
type Presenter interface {
	base() *Base
}

func (b *Base) base() *Base { return b }

// Initializer is implemented by presenters that need setup after binding
// and before the first render. Subscriptions established here are recorded
// in the owner's ledger.
type Initializer interface {
	Initialize()
}

// Teardowner is implemented by presenters that need cleanup. The hook runs
// before the presenter leaves any registry it joined and before its
// subscriptions are flushed.
type Teardowner interface {
	Teardown()
}

// selfListener keys the owner's default listener (its own render trigger)
// in the ledger, so repeated default subscriptions to one subject dedup.
type selfListener struct{}

// Base is the lifecycle delegate composed into every presenter. Embed it in
// your presenter struct to eliminate boilerplate:
//
//	type cartPresenter struct {
//	    presenter.Base
//	    items *observe.Observable[[]Item]
//	}
//
//	func (p *cartPresenter) Initialize() {
//	    p.items = observe.NewObservable([]Item(nil))
//	    presenter.Watch(p, p.items)
//	}
//
// Base carries the single render-trigger binding, the subscription ledger,
// the presenter's own notification subject, and the disposer stack. It is
// NOT thread-safe; like the rest of the runtime it is confined to the UI
// turn.
type Base struct {
	phase     Phase
	disposing bool
	trigger   func()
	sched     scheduler.FrameScheduler
	changes   observe.Notifier
	ledger    Ledger
	joined    []func() error
	disposers []func()
	mu        sync.Mutex
	self      any
}

// Phase returns the current lifecycle phase.
func (b *Base) Phase() Phase {
	return b.phase
}

// IsDisposed returns true once the presenter reached its terminal phase.
func (b *Base) IsDisposed() bool {
	return b.phase == PhaseDisposed
}

// typeName names the outer presenter for error context.
func (b *Base) typeName() string {
	if b.self == nil {
		return ""
	}
	return reflect.TypeOf(b.self).String()
}

// guard rejects operations on a disposed presenter.
func (b *Base) guard(op string) error {
	if b.phase == PhaseDisposed {
		return &errors.BindingError{Op: op, Kind: errors.KindUseAfterDispose, Presenter: b.typeName()}
	}
	return nil
}

// Bind attaches the render-trigger callback and scheduler. A presenter has
// exactly one trigger for its lifetime: a second call fails with a rebind
// error. A nil scheduler defaults to scheduler.Immediate.
//
// Binding establishes the implicit self-subscription: notifying the
// presenter's own subject schedules a render through the trigger.
func (b *Base) Bind(trigger func(), sched scheduler.FrameScheduler) error {
	const op = "presenter.Bind"
	if err := b.guard(op); err != nil {
		return err
	}
	if b.trigger != nil {
		return &errors.BindingError{Op: op, Kind: errors.KindRebind, Presenter: b.typeName()}
	}
	if trigger == nil {
		return &errors.BindingError{Op: op, Kind: errors.KindInvalidBinding, Presenter: b.typeName(), Err: fmt.Errorf("nil render trigger")}
	}
	if sched == nil {
		sched = scheduler.Immediate{}
	}
	b.trigger = trigger
	b.sched = sched
	b.changes.AddListener(b.scheduleRender)
	return nil
}

// scheduleRender is the implicit self-listener: it requests one coalesced
// render for this presenter. Suppressed outside the Active phase.
func (b *Base) scheduleRender() {
	if b.phase != PhaseActive {
		return
	}
	b.sched.Schedule(b, b.renderTask)
}

// renderTask runs at flush time. The phase is re-checked so a trigger
// pending across an unmount degrades to a no-op instead of touching a dead
// component.
func (b *Base) renderTask() {
	if b.phase != PhaseActive {
		return
	}
	b.trigger()
}

// Notify notifies the presenter's own subject. Listeners run synchronously;
// when Active, the implicit self-subscription schedules a render. On a
// disposed presenter Notify is a silent no-op, since a disposed owner is a
// legitimate target of an in-flight asynchronous resolution.
func (b *Base) Notify() {
	b.changes.NotifyListeners()
}

// AddListener registers a callback on the presenter's own subject, making
// the presenter usable anywhere a Listenable is expected.
func (b *Base) AddListener(fn func()) (remove func()) {
	return b.changes.AddListener(fn)
}

// ListenTo subscribes the presenter's render trigger to subject and records
// the pair in the ledger. Re-listening to the same subject is a no-op that
// still returns the subject for chaining.
func (b *Base) ListenTo(subject observe.Listenable) (observe.Listenable, error) {
	if err := b.guard("presenter.ListenTo"); err != nil {
		return nil, err
	}
	return b.ledger.Listen(subject, selfListener{}, b.scheduleRender), nil
}

// ListenWith subscribes an explicit listener to subject under a
// caller-supplied comparable key. The (subject, key) pair dedups in the
// ledger and is flushed at disposal with every other subscription.
func (b *Base) ListenWith(subject observe.Listenable, key any, fn func()) (observe.Listenable, error) {
	if err := b.guard("presenter.ListenWith"); err != nil {
		return nil, err
	}
	return b.ledger.Listen(subject, key, fn), nil
}

// Ledger exposes the presenter's subscription ledger for fine-grained
// unsubscription and introspection.
func (b *Base) Ledger() *Ledger {
	return &b.ledger
}

// Deactivate suspends rendering while the owning subtree is detached.
// Subscriptions are preserved; they are not torn down and re-created.
func (b *Base) Deactivate() error {
	if err := b.guard("presenter.Deactivate"); err != nil {
		return err
	}
	if b.phase == PhaseActive {
		b.phase = PhaseDeactivated
	}
	return nil
}

// Activate resumes rendering after a Deactivate.
func (b *Base) Activate() error {
	if err := b.guard("presenter.Activate"); err != nil {
		return err
	}
	if b.phase == PhaseDeactivated {
		b.phase = PhaseActive
	}
	return nil
}

// OnDispose registers a cleanup function to run when the presenter is
// disposed, after the ledger is flushed, in reverse registration order.
// Returns an unregister function. On an already-disposed presenter the
// cleanup runs immediately.
func (b *Base) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase == PhaseDisposed {
		cleanup()
		return func() {}
	}

	index := len(b.disposers)
	b.disposers = append(b.disposers, cleanup)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if index < len(b.disposers) {
			b.disposers[index] = nil
		}
	}
}

func (b *Base) runDisposers() {
	b.mu.Lock()
	disposers := b.disposers
	b.disposers = nil
	b.mu.Unlock()

	for i := len(disposers) - 1; i >= 0; i-- {
		if disposers[i] != nil {
			disposers[i]()
		}
	}
}

// Dispose drives the terminal transition. Ordering: the teardown hook runs
// first, then the presenter leaves every registry and scope it joined, then
// the ledger is flushed, then the disposer stack runs. Safe to call more
// than once; reentrant calls during teardown are no-ops.
//
// Ledger teardown failures are aggregated and reported to the global error
// handler rather than aborting the remaining cleanup.
func (b *Base) Dispose() {
	if b.phase == PhaseDisposed || b.disposing {
		return
	}
	b.disposing = true

	if td, ok := b.self.(Teardowner); ok {
		td.Teardown()
	}

	for i := len(b.joined) - 1; i >= 0; i-- {
		if err := b.joined[i](); err != nil {
			errors.Report(err)
		}
	}
	b.joined = nil

	if err := b.ledger.UnsubscribeAll(); err != nil {
		errors.Report(err)
	}

	b.runDisposers()
	b.changes.Dispose()
	b.phase = PhaseDisposed
}

// Mount drives Created → Initializing → Active for p: it binds the render
// trigger, runs the Initialize hook if present, and activates the
// presenter. The binding component supplies exactly one trigger here and
// never replaces it.
func Mount(p Presenter, trigger func(), sched scheduler.FrameScheduler) error {
	b := p.base()
	b.self = p
	if err := b.Bind(trigger, sched); err != nil {
		return err
	}
	b.phase = PhaseInitializing
	if init, ok := p.(Initializer); ok {
		init.Initialize()
	}
	b.phase = PhaseActive
	return nil
}

// Unmount disposes p. Equivalent to p.Dispose(); reads as the counterpart
// of Mount in binding glue.
func Unmount(p Presenter) {
	p.base().Dispose()
}

// Attach registers outer in loc under the unnamed key for T and records the
// membership, so the presenter unregisters itself during disposal. outer is
// normally the presenter itself.
func Attach[T any](p Presenter, loc registry.Locator, outer T) error {
	return AttachNamed(p, loc, "", outer)
}

// AttachNamed is Attach under a named key.
func AttachNamed[T any](p Presenter, loc registry.Locator, name string, outer T) error {
	b := p.base()
	if err := b.guard("presenter.Attach"); err != nil {
		return err
	}
	key := registry.NamedKeyFor[T](name)
	if err := loc.Register(key, registry.Registration{Instance: outer}); err != nil {
		return err
	}
	b.joined = append(b.joined, func() error {
		return loc.Unregister(key)
	})
	return nil
}

// Get resolves a dependency for p from loc. It is registry.Resolve guarded
// by the presenter lifecycle: on a disposed presenter it fails with a
// use-after-dispose error instead of consulting the registry.
func Get[T any](p Presenter, loc registry.Locator) (T, error) {
	return GetNamed[T](p, loc, "")
}

// GetNamed is Get under a named key.
func GetNamed[T any](p Presenter, loc registry.Locator, name string) (T, error) {
	b := p.base()
	if err := b.guard("presenter.Get"); err != nil {
		var zero T
		return zero, err
	}
	return registry.ResolveNamed[T](loc, name)
}
