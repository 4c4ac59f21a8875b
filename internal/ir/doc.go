// Package ir provides the format-agnostic intermediate representation
// shared by every schema front-end.
//
// This package is the foundational layer: all other internal packages
// import ir; ir imports nothing internal. It owns type identity (TypeID,
// IDAllocator), the per-run context (Run), and the qualified-name-keyed
// TypeRegistry that front-ends populate and the resolution phase reads.
//
// Key design constraints:
//   - TypeID 0 (Unresolved) is a sentinel and is never issued
//   - exactly one IDAllocator exists per Run; a second construction panics
//   - the registry is first-write-wins and never errors
package ir
