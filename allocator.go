package memarena

import (
	"math"
	"unsafe"
)

// Allocator is the four-operation allocation capability. Higher-level
// container code (growable buffers, string builders) is written against this
// interface rather than a concrete implementation.
//
// All four operations are plain synchronous calls and must never overlap:
// calling any of them from more than one logical thread of control at the
// same time is a contract violation, not merely unsupported. Implementations
// do not lock.
type Allocator interface {
	// Allocate returns a fresh region of exactly size bytes aligned to align
	// (a power of two). Contents are unspecified; callers must not assume
	// zeroing. The returned region does not alias any other live region.
	Allocate(size, align int) (*Region, error)

	// Resize shrinks r in place to n bytes, scrubbing the bytes beyond n,
	// and returns true. A growth request (n > r.Len()) returns false and
	// leaves r untouched; growth is strictly Reallocate's job. Invalid
	// handles also return false, never silently succeed.
	Resize(r *Region, n int) bool

	// Free invalidates r and scrubs every byte of its storage. Freeing a
	// dead or foreign handle returns ErrContractViolation.
	Free(r *Region) error

	// Reallocate materializes a brand-new region of n bytes at r's
	// alignment, copies min(n, r.Len()) bytes into its prefix, and kills the
	// old handle. It either returns a fully-sized region or fails; it never
	// succeeds small. This is the only growth path: regions are fixed once
	// created and can never be extended in place.
	Reallocate(r *Region, n int) (*Region, error)
}

// Heap is the stateless Allocator: it carries no bookkeeping, every call is
// self-contained, and each region is an independent buffer. Freed space is
// never reused and double-free detection relies solely on the handle flag.
//
// An optional per-request byte limit can be injected for testability; the
// zero configuration is unbounded.
type Heap struct {
	limit          int
	scrubOnRealloc bool
}

var _ Allocator = (*Heap)(nil)

// NewHeap returns an unbounded Heap.
func NewHeap() *Heap { return &Heap{} }

// NewBoundedHeap returns a Heap that fails single requests larger than
// limit bytes with ErrOutOfMemory. A limit <= 0 means unbounded.
func NewBoundedHeap(limit int) *Heap { return &Heap{limit: limit} }

// SetScrubOnReallocate controls whether Reallocate scrubs the dead source
// region. Off by default: only Free and shrink scrub eagerly. Turning it on
// makes every invalidation path poison uniformly.
func (h *Heap) SetScrubOnReallocate(on bool) { h.scrubOnRealloc = on }

// Allocate returns a fresh uninitialized region of exactly size bytes
// aligned to align.
func (h *Heap) Allocate(size, align int) (*Region, error) {
	if !validRequest(size, align) {
		return nil, ErrContractViolation
	}
	if h.limit > 0 && size > h.limit {
		return nil, ErrOutOfMemory
	}
	if size > math.MaxInt-align {
		return nil, ErrOutOfMemory
	}
	return newRegion(alignedBytes(size, align), align, h), nil
}

// Resize shrinks r to n bytes in place, or reports false.
func (h *Heap) Resize(r *Region, n int) bool {
	if !r.usable(h) {
		return false
	}
	return r.shrink(n)
}

// Free scrubs and invalidates r.
func (h *Heap) Free(r *Region) error {
	if !r.usable(h) {
		return ErrContractViolation
	}
	r.invalidate(true)
	return nil
}

// Reallocate copies r into a new region of n bytes and kills r.
func (h *Heap) Reallocate(r *Region, n int) (*Region, error) {
	if !r.usable(h) {
		return nil, ErrContractViolation
	}
	nr, err := h.Allocate(n, r.align)
	if err != nil {
		return nil, err
	}
	copy(nr.data, r.data)
	r.invalidate(h.scrubOnRealloc)
	return nr, nil
}

// validRequest checks the shared allocation preconditions: non-negative size
// and a power-of-two alignment.
func validRequest(size, align int) bool {
	return size >= 0 && align > 0 && align&(align-1) == 0
}

// alignedBytes returns a size-byte slice whose base address is a multiple of
// align. The buffer is over-allocated by align bytes and sliced at the first
// aligned offset.
func alignedBytes(size, align int) []byte {
	buf := make([]byte, size+align)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	shift := int((uintptr(align) - addr%uintptr(align)) % uintptr(align))
	return buf[shift : shift+size : shift+size]
}
