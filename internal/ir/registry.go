package ir

import "fmt"

// Registered is the minimal contract a type must satisfy to be stored in
// a TypeRegistry: it exposes the fully-disambiguated string key under
// which it is registered.
type Registered interface {
	QualifiedName() string
}

// LookupType is the capability contract a concrete IR type implements so
// generic infrastructure can assign it an identity and resolve references
// to it.
//
// LookupName returns the identifier as written at a reference site, which
// in general differs from the registry's qualified name; mapping one to
// the other is a context-sensitive resolution step performed later with
// namespace/import context.
type LookupType interface {
	Registered

	// SetID assigns the identity. It is intended to be called exactly
	// once, by the resolution phase, after the type is fully parsed.
	SetID(id TypeID)

	// ID returns the last assigned identity, or Unresolved if unset.
	ID() TypeID

	// LookupName returns the as-written reference identifier.
	LookupName() string
}

// TypeRegistry is the single source of truth for every named type
// discovered by any front-end in one generation run. It enables the
// later name-based resolution of type references found in properties,
// list element types and base types.
//
// The registry is designed for a single-writer parse phase followed by a
// read-only resolution phase; concurrent registration requires external
// synchronization.
type TypeRegistry[T Registered] struct {
	types        map[string]T
	genTypeCount int64
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry[T Registered]() *TypeRegistry[T] {
	return &TypeRegistry[T]{types: make(map[string]T)}
}

// Register inserts t under its qualified name only if absent. Duplicate
// registration is expected whenever multiple documents reference a shared
// type; it is silently idempotent and never errors, and the originally
// registered value is retained.
func (r *TypeRegistry[T]) Register(t T) {
	name := t.QualifiedName()
	if _, ok := r.types[name]; ok {
		return
	}
	r.types[name] = t
}

// Lookup returns the type registered under the given qualified name.
func (r *TypeRegistry[T]) Lookup(qualifiedName string) (T, bool) {
	t, ok := r.types[qualifiedName]
	return t, ok
}

// Len returns the number of registered types.
func (r *TypeRegistry[T]) Len() int { return len(r.types) }

// Types returns the underlying name-to-type mapping. Iteration order is
// unspecified; downstream ordering must come from an explicit ordering
// key, never from this map.
func (r *TypeRegistry[T]) Types() map[string]T { return r.types }

// GenerateTypeName returns a fresh synthetic name for a type with no
// natural qualified name, such as an inline nested type. Names are unique
// within this registry instance and follow the literal pattern
// __Custom_Type_<N>__ for a zero-based, strictly increasing N. The caller
// must subsequently register the type under the returned name.
func (r *TypeRegistry[T]) GenerateTypeName() string {
	name := fmt.Sprintf("__Custom_Type_%d__", r.genTypeCount)
	r.genTypeCount++
	return name
}
