package registry

import (
	"fmt"
	"sync"

	"github.com/go-drift/beacon/pkg/errors"
	"github.com/go-drift/beacon/pkg/observe"
)

// Registration supplies the content of a new entry: exactly one of Instance
// and Factory. Supplying both or neither fails with an invalid-registration
// error.
type Registration struct {
	// Instance is a ready-made value stored as Built.
	Instance any
	// Factory is a zero-argument constructor invoked lazily on first Get.
	Factory func() any
}

// entry is one registry slot. Lifecycle: unbuilt (factory present, instance
// absent) -> built (instance materialized on first Get) -> removed.
type entry struct {
	key      Key
	instance any
	factory  func() any
	built    bool
}

// Locator is the lookup surface shared by Registry and Scope. The typed
// package-level helpers (Put, Resolve, Drop, ...) accept any Locator.
type Locator interface {
	Register(key Key, reg Registration) error
	Unregister(key Key) error
	IsRegistered(key Key) bool
	Get(key Key) (any, error)
}

// Registry is a keyed store mapping (type tag, optional name) to a lazily
// built instance. Entries are created by explicit Register calls and
// destroyed only by explicit Unregister calls; there is no automatic expiry.
//
// A plain Registry performs no locking: it is a single-writer map suited to
// a single-threaded reactive loop. Hosts with genuinely concurrent access
// should use NewShared, which serializes mutation and makes the lazy-build
// step atomic.
//
// Registries are explicit injected state. Applications typically wire one at
// startup and pass it down; tests instantiate isolated ones. A process-wide
// Default exists for app-level convenience and can be Reset at teardown.
type Registry struct {
	entries map[Key]*entry
	frozen  bool
	mu      *sync.Mutex // nil for the unlocked single-writer form
}

// New creates an empty, unlocked registry.
func New() *Registry {
	return &Registry{entries: make(map[Key]*entry)}
}

// NewShared creates an empty registry guarded by a mutex. Lazy builds are
// atomic: the first Get caller builds, concurrent callers observe the same
// instance and the factory never runs twice. The factory runs under the
// registry lock, so factories in a shared registry must not call back into
// the same registry; use the unlocked form for reentrant wiring.
func NewShared() *Registry {
	return &Registry{entries: make(map[Key]*entry), mu: &sync.Mutex{}}
}

func (r *Registry) lock() {
	if r.mu != nil {
		r.mu.Lock()
	}
}

func (r *Registry) unlock() {
	if r.mu != nil {
		r.mu.Unlock()
	}
}

// checkKey validates the key shape shared by all operations.
func checkKey(op string, key Key) error {
	if key.Type.IsZero() {
		if key.Name != "" {
			// A name without a type can never resolve to a single slot.
			return &errors.RegistryError{Op: op, Kind: errors.KindAmbiguousKey, Name: key.Name}
		}
		return &errors.RegistryError{Op: op, Kind: errors.KindMissingTypeParameter}
	}
	return nil
}

// Register creates the entry for key. It fails with a
// duplicate-registration error if key is already present and with an
// invalid-registration error if reg does not supply exactly one of
// instance and factory.
func (r *Registry) Register(key Key, reg Registration) error {
	const op = "registry.Register"
	if err := checkKey(op, key); err != nil {
		return err
	}
	if (reg.Instance == nil) == (reg.Factory == nil) {
		return &errors.RegistryError{Op: op, Kind: errors.KindInvalidRegistration, Type: key.Type.String(), Name: key.Name}
	}

	r.lock()
	defer r.unlock()
	if r.frozen {
		return &errors.RegistryError{Op: op, Kind: errors.KindFrozenRegistry, Type: key.Type.String(), Name: key.Name}
	}
	if _, exists := r.entries[key]; exists {
		return &errors.RegistryError{Op: op, Kind: errors.KindDuplicateRegistration, Type: key.Type.String(), Name: key.Name}
	}
	e := &entry{key: key}
	if reg.Instance != nil {
		e.instance = reg.Instance
		e.built = true
	} else {
		e.factory = reg.Factory
	}
	r.entries[key] = e
	return nil
}

// Unregister removes the entry for key. If the stored instance is
// disposable, its Dispose runs exactly once, after removal from the map: a
// reentrant lookup from inside the disposal correctly reports the key as
// absent. Fails with a not-registered error if key is absent.
func (r *Registry) Unregister(key Key) error {
	const op = "registry.Unregister"
	if err := checkKey(op, key); err != nil {
		return err
	}

	r.lock()
	if r.frozen {
		r.unlock()
		return &errors.RegistryError{Op: op, Kind: errors.KindFrozenRegistry, Type: key.Type.String(), Name: key.Name}
	}
	e, exists := r.entries[key]
	if !exists {
		r.unlock()
		return &errors.RegistryError{Op: op, Kind: errors.KindNotRegistered, Type: key.Type.String(), Name: key.Name}
	}
	delete(r.entries, key)
	r.unlock()

	disposeEntry(e)
	return nil
}

// disposeEntry runs the disposal hook of a removed entry, if it has one.
// Unbuilt entries have no instance and nothing to dispose.
func disposeEntry(e *entry) {
	if !e.built {
		return
	}
	if d, ok := e.instance.(observe.Disposable); ok {
		d.Dispose()
	}
}

// IsRegistered reports whether key has a live entry.
func (r *Registry) IsRegistered(key Key) bool {
	if checkKey("registry.IsRegistered", key) != nil {
		return false
	}
	r.lock()
	defer r.unlock()
	_, exists := r.entries[key]
	return exists
}

// Get returns the instance for key, building it first if the entry is still
// unbuilt. The factory runs at most once per entry. Fails with a
// not-registered error if key is absent.
func (r *Registry) Get(key Key) (any, error) {
	const op = "registry.Get"
	if err := checkKey(op, key); err != nil {
		return nil, err
	}

	r.lock()
	defer r.unlock()
	e, exists := r.entries[key]
	if !exists {
		return nil, &errors.RegistryError{Op: op, Kind: errors.KindNotRegistered, Type: key.Type.String(), Name: key.Name}
	}
	if !e.built {
		e.instance = e.factory()
		e.factory = nil
		e.built = true
	}
	return e.instance, nil
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.lock()
	defer r.unlock()
	return len(r.entries)
}

// Keys returns the keys of all live entries, in unspecified order.
func (r *Registry) Keys() []Key {
	r.lock()
	defer r.unlock()
	keys := make([]Key, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	return keys
}

// EntryInfo describes one live entry for diagnostics.
type EntryInfo struct {
	Key Key
	// Built is false while the entry still holds an unrun factory.
	Built bool
	// InstanceType names the built instance's dynamic type, "" if unbuilt.
	InstanceType string
}

// Entries returns diagnostic descriptions of all live entries, in
// unspecified order.
func (r *Registry) Entries() []EntryInfo {
	r.lock()
	defer r.unlock()
	infos := make([]EntryInfo, 0, len(r.entries))
	for key, e := range r.entries {
		info := EntryInfo{Key: key, Built: e.built}
		if e.built {
			info.InstanceType = fmt.Sprintf("%T", e.instance)
		}
		infos = append(infos, info)
	}
	return infos
}

// Freeze marks the registry read-only: further Register and Unregister
// calls fail with a frozen-registry error. Lookups and Clear remain
// available; Clear is the shutdown path and must work on a frozen registry.
// Intended for hosts that complete all wiring at boot.
func (r *Registry) Freeze() {
	r.lock()
	defer r.unlock()
	r.frozen = true
}

// IsFrozen returns true once Freeze has run.
func (r *Registry) IsFrozen() bool {
	r.lock()
	defer r.unlock()
	return r.frozen
}

// Clear removes every entry, running disposal hooks. Intended for process
// shutdown and test teardown.
func (r *Registry) Clear() {
	r.lock()
	removed := make([]*entry, 0, len(r.entries))
	for key, e := range r.entries {
		delete(r.entries, key)
		removed = append(removed, e)
	}
	r.unlock()

	for _, e := range removed {
		disposeEntry(e)
	}
}

var (
	defaultMu       sync.Mutex
	defaultRegistry = New()
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultRegistry
}

// Reset clears the process-wide registry and replaces it with a fresh one.
// Call from test teardown or application shutdown.
func Reset() {
	defaultMu.Lock()
	old := defaultRegistry
	defaultRegistry = New()
	defaultMu.Unlock()
	old.Clear()
}
