// Package registry provides the keyed object store the Beacon runtime uses
// to share presenters and services across unrelated parts of a component
// tree.
//
// # Keys
//
// Entries are addressed by a Key: an explicit type token plus an optional
// instance name. Tokens are minted per Go type with TagFor; the empty
// interface is rejected so an elided type argument fails loudly instead of
// matching the wrong slot:
//
//	key := registry.KeyFor[*CartService]()
//	named := registry.NamedKeyFor[*CartService]("checkout")
//
// # Registration and lookup
//
// The typed helpers cover the common paths:
//
//	reg := registry.New()
//	registry.Put(reg, service)                      // eager
//	registry.PutFactory(reg, func() *Db { ... })    // lazy, built on first Resolve
//	svc, err := registry.Resolve[*CartService](reg)
//	registry.Drop[*CartService](reg)                // runs Dispose if implemented
//
// An entry is created only by an explicit registration and destroyed only by
// an explicit unregistration or scope close; there is no automatic expiry.
// Unbuilt factories run at most once. Anything stored that implements
// observe.Disposable has Dispose invoked exactly once when its entry is
// removed, after the map no longer reports it as registered.
//
// # Scopes
//
// A Scope shadows the backing registry for one subtree:
//
//	scope := reg.NewScope("checkout-flow")
//	registry.Put(scope, flowState)
//	...
//	scope.Close() // subtree unmounted: tears down everything local
//
// Lookups walk the scope chain outward before falling back to the backing
// registry.
//
// # Threading
//
// New returns the unlocked single-writer form for single-threaded reactive
// loops. NewShared adds a mutex and an atomic lazy-build step for
// multi-threaded hosts.
package registry
