// Package resolve turns the untyped front-end output into the resolved
// representation the emitter consumes: enumerations, type aliases,
// union types and classes with fully resolved data types, ordered so
// every type is declared before its first use.
//
// Resolution also assigns type identities. Each registered type gets
// its TypeID exactly once, from the allocator of the generation run;
// re-resolving the same registry within one run is a misuse and panics
// in the identity layer.
package resolve
