package registry

import "reflect"

// TypeTag is a stable, comparable token identifying a declared Go type.
// Tags are minted with TagFor and used as the type half of a Key. The zero
// TypeTag is invalid and every registry operation rejects it.
type TypeTag struct {
	rt reflect.Type
}

// TagFor mints the tag for type T.
//
// T must name a concrete service type or a non-empty interface. Passing the
// empty interface (an elided type argument) yields the zero tag, which every
// registry operation rejects with a missing-type-parameter error rather than
// silently matching a base type.
func TagFor[T any]() TypeTag {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() == reflect.Interface && rt.NumMethod() == 0 {
		return TypeTag{}
	}
	return TypeTag{rt: rt}
}

// IsZero returns true for the invalid zero tag.
func (t TypeTag) IsZero() bool {
	return t.rt == nil
}

func (t TypeTag) String() string {
	if t.rt == nil {
		return "<none>"
	}
	return t.rt.String()
}

// Key addresses one registry slot: a type tag plus an optional instance
// name. The empty name is the unnamed slot for that type; at most one live
// entry exists per Key at any time.
type Key struct {
	Type TypeTag
	Name string
}

// KeyFor builds the unnamed key for type T.
func KeyFor[T any]() Key {
	return Key{Type: TagFor[T]()}
}

// NamedKeyFor builds the key for type T under the given instance name.
func NamedKeyFor[T any](name string) Key {
	return Key{Type: TagFor[T](), Name: name}
}

func (k Key) String() string {
	if k.Name == "" {
		return k.Type.String()
	}
	return k.Type.String() + "[" + k.Name + "]"
}
