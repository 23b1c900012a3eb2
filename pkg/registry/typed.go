package registry

import (
	"fmt"

	"github.com/go-drift/beacon/pkg/errors"
)

// Put registers a ready-made instance under the unnamed key for T.
func Put[T any](loc Locator, instance T) error {
	return loc.Register(KeyFor[T](), Registration{Instance: instance})
}

// PutNamed registers a ready-made instance under the named key for T.
func PutNamed[T any](loc Locator, name string, instance T) error {
	return loc.Register(NamedKeyFor[T](name), Registration{Instance: instance})
}

// PutFactory registers a lazy factory under the unnamed key for T. The
// factory runs at most once, on the first Resolve.
func PutFactory[T any](loc Locator, factory func() T) error {
	key := KeyFor[T]()
	if factory == nil {
		return loc.Register(key, Registration{})
	}
	return loc.Register(key, Registration{Factory: func() any { return factory() }})
}

// PutFactoryNamed registers a lazy factory under the named key for T.
func PutFactoryNamed[T any](loc Locator, name string, factory func() T) error {
	key := NamedKeyFor[T](name)
	if factory == nil {
		return loc.Register(key, Registration{})
	}
	return loc.Register(key, Registration{Factory: func() any { return factory() }})
}

// Resolve looks up the unnamed instance of T, building it if needed.
func Resolve[T any](loc Locator) (T, error) {
	return ResolveNamed[T](loc, "")
}

// ResolveNamed looks up the named instance of T, building it if needed.
func ResolveNamed[T any](loc Locator, name string) (T, error) {
	var zero T
	value, err := loc.Get(Key{Type: TagFor[T](), Name: name})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		// A stored value that does not assert to T means the key was built
		// from a different type token than the entry it matched.
		return zero, &errors.RegistryError{
			Op:   "registry.Resolve",
			Kind: errors.KindAmbiguousKey,
			Type: TagFor[T]().String(),
			Name: name,
			Err:  fmt.Errorf("stored value has type %T", value),
		}
	}
	return typed, nil
}

// MustResolve is Resolve for wiring paths where a missing entry is fatal.
// It panics on error.
func MustResolve[T any](loc Locator) T {
	value, err := Resolve[T](loc)
	if err != nil {
		panic(err)
	}
	return value
}

// Has reports whether the unnamed key for T is registered.
func Has[T any](loc Locator) bool {
	return loc.IsRegistered(KeyFor[T]())
}

// HasNamed reports whether the named key for T is registered.
func HasNamed[T any](loc Locator, name string) bool {
	return loc.IsRegistered(NamedKeyFor[T](name))
}

// Drop unregisters the unnamed entry for T, running its disposal hook.
func Drop[T any](loc Locator) error {
	return loc.Unregister(KeyFor[T]())
}

// DropNamed unregisters the named entry for T, running its disposal hook.
func DropNamed[T any](loc Locator, name string) error {
	return loc.Unregister(NamedKeyFor[T](name))
}
