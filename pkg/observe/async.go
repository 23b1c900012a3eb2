package observe

import (
	"context"
	"sync"
)

// FutureNotifier wraps a one-shot asynchronous computation as an observable
// subject. Construction starts the computation on a background goroutine;
// when it resolves, listeners are notified once on a later turn through the
// registered dispatch function.
//
// Disposing the notifier cancels the computation's context. A resolution
// that races disposal is harmless: NotifyListeners on a disposed notifier
// is a silent no-op.
//
// Example:
//
//	user := observe.NewFutureNotifier(func(ctx context.Context) (*User, error) {
//	    return client.FetchUser(ctx, id)
//	})
//	p.ListenTo(user)                       // re-render on resolution
//	// in Render: user.Done(), user.Result(), user.Err()
type FutureNotifier[T any] struct {
	Notifier
	mu     sync.Mutex
	result T
	err    error
	done   bool
	cancel context.CancelFunc
}

// NewFutureNotifier starts run on a background goroutine and returns the
// wrapping notifier. run receives a context cancelled at disposal.
func NewFutureNotifier[T any](run func(ctx context.Context) (T, error)) *FutureNotifier[T] {
	ctx, cancel := context.WithCancel(context.Background())
	f := &FutureNotifier[T]{cancel: cancel}
	go func() {
		value, err := run(ctx)
		dispatch(func() {
			f.mu.Lock()
			f.result = value
			f.err = err
			f.done = true
			f.mu.Unlock()
			f.NotifyListeners()
		})
	}()
	return f
}

// Done returns true once the computation has resolved.
func (f *FutureNotifier[T]) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Result returns the resolved value. Zero until Done.
func (f *FutureNotifier[T]) Result() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Err returns the resolution error, if any. Nil until Done.
func (f *FutureNotifier[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Dispose cancels the computation and disposes the underlying notifier.
func (f *FutureNotifier[T]) Dispose() {
	f.cancel()
	f.Notifier.Dispose()
}

// StreamNotifier wraps a receive channel as an observable subject. Each
// received value is stored as the latest and listeners are notified on a
// later turn through the registered dispatch function. The notifier stops
// when the channel closes or the wrapper is disposed.
type StreamNotifier[T any] struct {
	Notifier
	mu     sync.Mutex
	latest T
	seen   bool
	closed bool
	cancel context.CancelFunc
}

// NewStreamNotifier starts draining ch on a background goroutine and
// returns the wrapping notifier.
func NewStreamNotifier[T any](ch <-chan T) *StreamNotifier[T] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &StreamNotifier[T]{cancel: cancel}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case value, ok := <-ch:
				if !ok {
					dispatch(func() {
						s.mu.Lock()
						s.closed = true
						s.mu.Unlock()
						s.NotifyListeners()
					})
					return
				}
				dispatch(func() {
					s.mu.Lock()
					s.latest = value
					s.seen = true
					s.mu.Unlock()
					s.NotifyListeners()
				})
			}
		}
	}()
	return s
}

// Latest returns the most recently received value. Zero before the first
// delivery; use HasValue to distinguish.
func (s *StreamNotifier[T]) Latest() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// HasValue returns true once at least one value has been delivered.
func (s *StreamNotifier[T]) HasValue() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen
}

// Closed returns true once the source channel has closed.
func (s *StreamNotifier[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Dispose stops draining the channel and disposes the underlying notifier.
func (s *StreamNotifier[T]) Dispose() {
	s.cancel()
	s.Notifier.Dispose()
}
