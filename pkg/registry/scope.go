package registry

import (
	"github.com/go-drift/beacon/pkg/errors"
)

// Scope is a registry bound to a subtree of the component tree. Lookups
// consult the scope chain from the nearest enclosing scope outward, then the
// backing registry, so scope entries shadow global ones for descendants.
//
// Scope entries follow the normal entry lifecycle, but are additionally torn
// down when the owning subtree unmounts: Close removes every local entry and
// runs disposal hooks regardless of explicit unregistration.
type Scope struct {
	label   string
	local   *Registry
	parent  *Scope
	backing *Registry
	closed  bool
}

// NewScope opens a scope backed by this registry. The label appears in
// error context and debug snapshots.
func (r *Registry) NewScope(label string) *Scope {
	return &Scope{label: label, local: New(), backing: r}
}

// NewScope opens a child scope nested inside s. Lookups in the child consult
// the child first, then s and its ancestors, then the backing registry.
func (s *Scope) NewScope(label string) *Scope {
	return &Scope{label: label, local: New(), parent: s, backing: s.backing}
}

// Label returns the scope's diagnostic label.
func (s *Scope) Label() string {
	return s.label
}

// Register creates an entry in this scope, shadowing any entry for the same
// key further out. Fails with an invalid-registration error if the scope is
// already closed.
func (s *Scope) Register(key Key, reg Registration) error {
	if s.closed {
		return &errors.RegistryError{
			Op:    "scope.Register",
			Kind:  errors.KindInvalidRegistration,
			Type:  key.Type.String(),
			Name:  key.Name,
			Scope: s.label,
		}
	}
	if err := s.local.Register(key, reg); err != nil {
		annotate(err, s.label)
		return err
	}
	return nil
}

// Unregister removes an entry registered in this scope. It does not touch
// the parent chain: a key present only further out fails with a
// not-registered error against this scope.
func (s *Scope) Unregister(key Key) error {
	if err := s.local.Unregister(key); err != nil {
		annotate(err, s.label)
		return err
	}
	return nil
}

// IsRegistered reports whether key resolves anywhere on the scope chain or
// in the backing registry.
func (s *Scope) IsRegistered(key Key) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if !cur.closed && cur.local.IsRegistered(key) {
			return true
		}
	}
	return s.backing.IsRegistered(key)
}

// Get resolves key against the scope chain from s outward, falling back to
// the backing registry. Closed scopes on the chain are skipped.
func (s *Scope) Get(key Key) (any, error) {
	if err := checkKey("scope.Get", key); err != nil {
		annotate(err, s.label)
		return nil, err
	}
	for cur := s; cur != nil; cur = cur.parent {
		if cur.closed {
			continue
		}
		if cur.local.IsRegistered(key) {
			return cur.local.Get(key)
		}
	}
	value, err := s.backing.Get(key)
	if err != nil {
		annotate(err, s.label)
		return nil, err
	}
	return value, nil
}

// Entries returns diagnostic descriptions of the entries registered in
// this scope, excluding the parent chain.
func (s *Scope) Entries() []EntryInfo {
	return s.local.Entries()
}

// Close tears down every entry registered in this scope, running disposal
// hooks, and marks the scope closed. Further registrations fail; lookups
// pass through to the parent chain. Close is idempotent.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.local.Clear()
}

// IsClosed returns true once Close has run.
func (s *Scope) IsClosed() bool {
	return s.closed
}

// annotate stamps the scope label onto a registry error for context.
func annotate(err error, label string) {
	if re, ok := err.(*errors.RegistryError); ok && re.Scope == "" {
		re.Scope = label
	}
}
