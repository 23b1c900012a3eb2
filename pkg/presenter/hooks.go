package presenter

import (
	"github.com/go-drift/beacon/pkg/observe"
)

// Use creates a controller and registers it for automatic disposal when the
// presenter is disposed.
//
// Example:
//
//	func (p *searchPresenter) Initialize() {
//	    p.debounce = presenter.Use(p, func() *DebounceController {
//	        return NewDebounceController(200 * time.Millisecond)
//	    })
//	}
func Use[C observe.Disposable](p Presenter, create func() C) C {
	b := p.base()
	controller := create()
	b.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// Watch subscribes the presenter's render trigger to a subject. Call it
// once in Initialize, not in the render function; the subscription is
// recorded in the ledger and cleaned up at disposal. Watching the same
// subject twice is a no-op.
//
// Example:
//
//	func (p *cartPresenter) Initialize() {
//	    p.items = observe.NewObservable([]Item(nil))
//	    presenter.Watch(p, p.items)
//	}
func Watch(p Presenter, subject observe.Listenable) error {
	_, err := p.base().ListenTo(subject)
	return err
}
