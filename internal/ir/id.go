package ir

import (
	"math"
	"sync/atomic"
)

// TypeID is the process-unique identity assigned to an IR type.
type TypeID uint64

// Unresolved is the reserved sentinel meaning "no identity assigned yet".
const Unresolved TypeID = 0

// IsValid reports whether the identity has been assigned.
func (id TypeID) IsValid() bool { return id != Unresolved }

// IDAllocator issues directly-comparable unique identities to IR types
// across every front-end and document in one generation run.
//
// The counter update is atomic and lock-free, so documents may be parsed
// in parallel. Identities are strictly increasing and never equal to
// Unresolved.
//
// An IDAllocator is obtained from Run.Allocator; do not construct one
// directly.
type IDAllocator struct {
	last atomic.Uint64
}

// NextID atomically advances the counter and returns a fresh identity.
//
// Counter exhaustion is an unrecoverable invariant violation, not a
// reportable input error: it indicates an allocator bug or overflow.
// NextID panics in that case rather than returning an error.
func (a *IDAllocator) NextID() TypeID {
	id := a.last.Add(1)
	if id == 0 || id == math.MaxUint64 {
		panic("ir: type identity counter exhausted")
	}
	return TypeID(id)
}

// Run is the context for one generation run. It owns the run's single
// IDAllocator, replacing the process-wide singleton of a global-state
// design so independent runs (and tests) can coexist in one process.
type Run struct {
	allocator   *IDAllocator
	constructed atomic.Bool
}

// NewRun creates a fresh generation run with its allocator constructed
// exactly once.
func NewRun() *Run {
	r := &Run{}
	r.allocator = r.NewAllocator()
	return r
}

// Allocator returns the run's identity allocator.
func (r *Run) Allocator() *IDAllocator { return r.allocator }

// NewAllocator constructs the run's allocator. NewRun calls it once; a
// second construction attempt on the same run is a fatal programming
// error, guarding against accidental duplicate global-state
// initialization.
func (r *Run) NewAllocator() *IDAllocator {
	if !r.constructed.CompareAndSwap(false, true) {
		panic("ir: IDAllocator already constructed for this run")
	}
	return &IDAllocator{}
}
