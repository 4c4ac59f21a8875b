// Package model defines the canonical, emitter-facing descriptors the
// resolution phase produces from the intermediate representation.
//
// The descriptors are a contract, not a parser or generator: emitters
// consume ClassType and EnumType values and never look back at the
// registry. Derived facts (NeedsDestructor, the per-property type flags)
// are computed from the fully resolved type graph and must be recomputed
// whenever the property set changes, never cached independently of it.
package model
