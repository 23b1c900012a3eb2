// Package errors provides structured error handling for the Beacon runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindDuplicateRegistration indicates a register call against a key that
	// is already present.
	KindDuplicateRegistration
	// KindNotRegistered indicates a lookup or unregister call against an
	// absent key.
	KindNotRegistered
	// KindInvalidRegistration indicates a register call that supplied both or
	// neither of instance and factory.
	KindInvalidRegistration
	// KindFrozenRegistry indicates a mutation attempted on a registry that
	// was frozen after boot wiring completed.
	KindFrozenRegistry
	// KindAmbiguousKey indicates a scope/type combination that cannot resolve
	// to a single key.
	KindAmbiguousKey
	// KindMissingTypeParameter indicates a generic entry point invoked with an
	// elided or interface-only type argument.
	KindMissingTypeParameter
	// KindRebind indicates a second render-trigger assignment on one presenter.
	KindRebind
	// KindInvalidBinding indicates a first-bind precondition failure, such as
	// a nil render trigger.
	KindInvalidBinding
	// KindUseAfterDispose indicates a presenter operation after disposal.
	KindUseAfterDispose
	// KindTeardown indicates one or more failures during bulk subscription
	// teardown.
	KindTeardown
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindDuplicateRegistration:
		return "duplicate-registration"
	case KindNotRegistered:
		return "not-registered"
	case KindInvalidRegistration:
		return "invalid-registration"
	case KindFrozenRegistry:
		return "frozen-registry"
	case KindAmbiguousKey:
		return "ambiguous-key"
	case KindMissingTypeParameter:
		return "missing-type-parameter"
	case KindRebind:
		return "rebind"
	case KindInvalidBinding:
		return "invalid-binding"
	case KindUseAfterDispose:
		return "use-after-dispose"
	case KindTeardown:
		return "teardown"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// RegistryError represents a contract violation against the keyed registry.
// These are programmer errors raised synchronously at the offending call
// site, never retried internally.
type RegistryError struct {
	// Op is the operation that failed (e.g., "registry.Register").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Type is the type tag of the offending key, if known.
	Type string
	// Name is the instance name of the offending key ("" for the unnamed slot).
	Name string
	// Scope identifies the scope consulted, if the lookup was scope-qualified.
	Scope string
	// Err is the underlying error, if any.
	Err error
}

func (e *RegistryError) Error() string {
	key := e.Type
	if e.Name != "" {
		key = fmt.Sprintf("%s[%q]", e.Type, e.Name)
	}
	msg := fmt.Sprintf("%s [%s] key=%s", e.Op, e.Kind, key)
	if e.Scope != "" {
		msg += fmt.Sprintf(" scope=%s", e.Scope)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// BindingError represents a contract violation against a presenter binding.
type BindingError struct {
	// Op is the operation that failed (e.g., "presenter.Bind").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Presenter is the type name of the offending presenter.
	Presenter string
	// Err is the underlying error, if any.
	Err error
}

func (e *BindingError) Error() string {
	if e.Presenter != "" {
		return fmt.Sprintf("%s [%s] presenter=%s", e.Op, e.Kind, e.Presenter)
	}
	return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// TeardownError aggregates individual listener-removal failures collected
// during a ledger's bulk unsubscribe. Teardown is best-effort: no pair is
// skipped because an earlier removal failed.
type TeardownError struct {
	// Failures holds one error per pair whose removal failed.
	Failures []error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("ledger teardown: %d removal calls failed", len(e.Failures))
}

// Unwrap exposes the individual failures to errors.Is/As chains.
func (e *TeardownError) Unwrap() []error {
	return e.Failures
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "ledger.UnsubscribeAll").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// KindOf extracts the ErrorKind from any Beacon error.
// Returns KindUnknown for nil and foreign errors.
func KindOf(err error) ErrorKind {
	switch e := err.(type) {
	case *RegistryError:
		return e.Kind
	case *BindingError:
		return e.Kind
	case *TeardownError:
		return KindTeardown
	case *PanicError:
		return KindPanic
	default:
		return KindUnknown
	}
}

// IsDuplicateRegistration reports whether err is a duplicate-registration failure.
func IsDuplicateRegistration(err error) bool { return KindOf(err) == KindDuplicateRegistration }

// IsNotRegistered reports whether err is a not-registered failure.
func IsNotRegistered(err error) bool { return KindOf(err) == KindNotRegistered }

// IsInvalidRegistration reports whether err is an invalid-registration failure.
func IsInvalidRegistration(err error) bool { return KindOf(err) == KindInvalidRegistration }

// IsFrozenRegistry reports whether err is a frozen-registry failure.
func IsFrozenRegistry(err error) bool { return KindOf(err) == KindFrozenRegistry }

// IsAmbiguousKey reports whether err is an ambiguous-key failure.
func IsAmbiguousKey(err error) bool { return KindOf(err) == KindAmbiguousKey }

// IsMissingTypeParameter reports whether err is a missing-type-parameter failure.
func IsMissingTypeParameter(err error) bool { return KindOf(err) == KindMissingTypeParameter }

// IsRebind reports whether err is a rebind failure.
func IsRebind(err error) bool { return KindOf(err) == KindRebind }

// IsInvalidBinding reports whether err is an invalid-binding failure.
func IsInvalidBinding(err error) bool { return KindOf(err) == KindInvalidBinding }

// IsUseAfterDispose reports whether err is a use-after-dispose failure.
func IsUseAfterDispose(err error) bool { return KindOf(err) == KindUseAfterDispose }
