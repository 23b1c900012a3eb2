package presenter

import (
	"github.com/go-drift/beacon/pkg/errors"
	"github.com/go-drift/beacon/pkg/observe"
)

// subscriptionKey identifies one (subject, listener) pair by identity.
// The subject half is the subject's interface value (a pointer for every
// observe type); the listener half is a caller-supplied comparable key,
// since Go function values have no identity of their own.
type subscriptionKey struct {
	subject  observe.Listenable
	listener any
}

// Ledger is a per-owner record of the subscriptions created through the
// owner's listen calls. It deduplicates pairs and bulk-unsubscribes on
// owner disposal, so no listener dangles past its owner.
//
// A Ledger is owned by exactly one presenter and, like the rest of the
// runtime, is confined to the UI turn.
type Ledger struct {
	removers map[subscriptionKey]func()
	order    []subscriptionKey
}

// Listen records the (subject, key) pair and registers fn on the subject.
// If the pair is already present the subject is not touched again; either
// way the subject is returned for chaining. key must be comparable.
func (l *Ledger) Listen(subject observe.Listenable, key any, fn func()) observe.Listenable {
	if subject == nil {
		return nil
	}
	sk := subscriptionKey{subject: subject, listener: key}
	if _, exists := l.removers[sk]; exists {
		return subject
	}
	if l.removers == nil {
		l.removers = make(map[subscriptionKey]func())
	}
	l.removers[sk] = subject.AddListener(fn)
	l.order = append(l.order, sk)
	return subject
}

// Contains reports whether the (subject, key) pair is recorded.
func (l *Ledger) Contains(subject observe.Listenable, key any) bool {
	_, exists := l.removers[subscriptionKey{subject: subject, listener: key}]
	return exists
}

// Len returns the number of recorded pairs.
func (l *Ledger) Len() int {
	return len(l.removers)
}

// Unsubscribe removes one recorded pair, detaching the listener from its
// subject. Unknown pairs are ignored.
func (l *Ledger) Unsubscribe(subject observe.Listenable, key any) {
	sk := subscriptionKey{subject: subject, listener: key}
	remove, exists := l.removers[sk]
	if !exists {
		return
	}
	delete(l.removers, sk)
	for i, recorded := range l.order {
		if recorded == sk {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	remove()
}

// UnsubscribeAll detaches every recorded pair and clears the ledger.
//
// Teardown is best-effort and exhaustive: a panic while removing one pair
// does not prevent removal of the remaining pairs. Individual failures are
// collected and returned as a single *errors.TeardownError. Calling
// UnsubscribeAll on an empty or already-flushed ledger is a no-op.
func (l *Ledger) UnsubscribeAll() error {
	if len(l.order) == 0 {
		l.removers = nil
		l.order = nil
		return nil
	}

	var failures []error
	for _, sk := range l.order {
		remove := l.removers[sk]
		if remove == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					failures = append(failures, &errors.PanicError{
						Op:         "ledger.UnsubscribeAll",
						Value:      r,
						StackTrace: errors.CaptureStack(),
					})
				}
			}()
			remove()
		}()
	}
	l.removers = nil
	l.order = nil

	if len(failures) > 0 {
		return &errors.TeardownError{Failures: failures}
	}
	return nil
}
