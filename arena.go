package memarena

import (
	"sync/atomic"
	"unsafe"
)

// DefaultCapacity is the default backing-region capacity for new arenas (64 KiB).
const DefaultCapacity = 1 << 16

// Arena is a bounded Allocator: every region is carved out of one
// fixed-capacity backing slab by a bump pointer. There is no free list, no
// reuse, and no coalescing; Free only scrubs and invalidates the handle, and
// the slab fills monotonically until Reset or Release.
//
// An Arena is strictly single-threaded. It does not lock; instead it detects
// overlapping calls with a busy flag and reports them as contract violations.
type Arena struct {
	buf  []byte
	off  int
	busy atomic.Bool

	scrubOnRealloc bool
	unmap          func() error

	live         int
	allocCalls   int
	freeCalls    int
	resizeCalls  int
	reallocCalls int
}

var _ Allocator = (*Arena)(nil)

// NewArena creates an Arena with the given capacity in bytes, backed by a
// heap slab. If capacity <= 0, DefaultCapacity is used.
func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Arena{buf: make([]byte, capacity)}
}

// SetScrubOnReallocate controls whether Reallocate scrubs the dead source
// region. Off by default: only Free and shrink scrub eagerly.
func (a *Arena) SetScrubOnReallocate(on bool) { a.scrubOnRealloc = on }

// enter flags the arena busy for the duration of one operation. A false
// return means another operation is already in flight, which the sequential
// contract forbids.
func (a *Arena) enter() bool { return a.busy.CompareAndSwap(false, true) }
func (a *Arena) leave()      { a.busy.Store(false) }

// Allocate carves a fresh uninitialized region of exactly size bytes aligned
// to align out of the backing slab.
func (a *Arena) Allocate(size, align int) (*Region, error) {
	if !a.enter() {
		return nil, ErrContractViolation
	}
	defer a.leave()
	return a.allocate(size, align)
}

func (a *Arena) allocate(size, align int) (*Region, error) {
	if a.buf == nil {
		return nil, ErrContractViolation
	}
	if !validRequest(size, align) {
		return nil, ErrContractViolation
	}
	data, err := a.carve(size, align)
	if err != nil {
		return nil, err
	}
	a.allocCalls++
	a.live++
	return newRegion(data, align, a), nil
}

// carve advances the bump pointer past any padding needed to place the next
// region at an address that is a multiple of align.
func (a *Arena) carve(size, align int) ([]byte, error) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
	pad := int((uintptr(align) - (base+uintptr(a.off))%uintptr(align)) % uintptr(align))
	start := a.off + pad
	if start > len(a.buf) || size > len(a.buf)-start {
		return nil, ErrOutOfMemory
	}
	a.off = start + size
	return a.buf[start : start+size : start+size], nil
}

// Resize shrinks r to n bytes in place, or reports false.
func (a *Arena) Resize(r *Region, n int) bool {
	if !a.enter() {
		return false
	}
	defer a.leave()
	if a.buf == nil || !r.usable(a) {
		return false
	}
	if !r.shrink(n) {
		return false
	}
	a.resizeCalls++
	return true
}

// Free scrubs and invalidates r. The slab space is not reclaimed.
func (a *Arena) Free(r *Region) error {
	if !a.enter() {
		return ErrContractViolation
	}
	defer a.leave()
	if a.buf == nil || !r.usable(a) {
		return ErrContractViolation
	}
	r.invalidate(true)
	a.freeCalls++
	a.live--
	return nil
}

// Reallocate copies r into a freshly carved region of n bytes and kills r.
func (a *Arena) Reallocate(r *Region, n int) (*Region, error) {
	if !a.enter() {
		return nil, ErrContractViolation
	}
	defer a.leave()
	if a.buf == nil || !r.usable(a) {
		return nil, ErrContractViolation
	}
	nr, err := a.allocate(n, r.align)
	if err != nil {
		return nil, err
	}
	copy(nr.data, r.data)
	r.invalidate(a.scrubOnRealloc)
	a.reallocCalls++
	a.live--
	return nr, nil
}

// Reset scrubs the carved prefix and rewinds the bump pointer to zero.
// Every region handed out before the call becomes dead storage; using a
// stale handle afterwards is a contract violation the arena cannot detect.
func (a *Arena) Reset() error {
	if !a.enter() {
		return ErrContractViolation
	}
	defer a.leave()
	if a.buf == nil {
		return ErrContractViolation
	}
	scrub(a.buf[:a.off])
	a.off = 0
	a.live = 0
	return nil
}

// Release drops the backing slab and makes the arena unusable. For mapped
// arenas the region is returned to the OS. Releasing twice is a no-op.
func (a *Arena) Release() error {
	if !a.enter() {
		return ErrContractViolation
	}
	defer a.leave()
	if a.buf == nil {
		return nil
	}
	a.buf = nil
	a.off = 0
	a.live = 0
	if a.unmap != nil {
		unmap := a.unmap
		a.unmap = nil
		return unmap()
	}
	return nil
}
