package observe

// Observable holds a value and notifies listeners when it changes.
//
// The embedded Notifier carries the plain listeners, so an *Observable can
// be passed anywhere a Listenable is expected (a presenter's ListenTo, a
// Merged source). OnChange registers a typed listener that receives the
// new value.
//
// Example:
//
//	counter := observe.NewObservable(0)
//	remove := counter.OnChange(func(v int) { fmt.Println("now", v) })
//	counter.Set(1)
//	remove()
type Observable[T any] struct {
	Notifier
	value T
}

// NewObservable creates an observable with the given initial value.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	return o.value
}

// Set stores a new value and notifies all listeners.
func (o *Observable[T]) Set(value T) {
	o.value = value
	o.NotifyListeners()
}

// Update applies a transformation to the current value and notifies.
func (o *Observable[T]) Update(transform func(T) T) {
	o.value = transform(o.value)
	o.NotifyListeners()
}

// OnChange registers a callback that receives the value after each change.
// Returns an unsubscribe function.
func (o *Observable[T]) OnChange(fn func(T)) (remove func()) {
	if fn == nil {
		return func() {}
	}
	return o.AddListener(func() {
		fn(o.value)
	})
}
