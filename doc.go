// Package memarena implements a bounded arena allocator with shrink-only
// resize and copy-based growth.
//
// # Overview
//
// The package exposes a four-operation allocation capability (Allocate,
// Resize, Free, Reallocate) over opaque Region handles, plus two
// implementations of it:
//
//   - Heap: a stateless allocator where every region is an independent
//     aligned buffer. No bookkeeping, no reuse, optional per-request size
//     limit for testability.
//   - Arena: a fixed-capacity backing slab carved by a bump pointer. No free
//     list, no coalescing; Free never reclaims space. Optionally backed by an
//     anonymous memory mapping (NewMappedArena).
//
// # Basic Usage
//
//	h := memarena.NewHeap()
//
//	r, err := h.Allocate(10, 8)
//	if err != nil {
//	    return err
//	}
//
//	h.Resize(r, 5)  // shrink in place, tail scrubbed
//	r, err = h.Reallocate(r, 20) // growth is always copy-to-new-region
//	err = h.Free(r) // bytes scrubbed, handle dead
//
// # Resize Never Grows
//
// Resize succeeds only for new sizes less than or equal to the region's
// current length. A region's trailing bytes may belong to other allocations,
// so in-place growth is never attempted: a growth request returns false and
// the caller falls back to Reallocate, which always produces a fully-sized
// new region (or fails with ErrOutOfMemory) and kills the old handle.
//
// # Poison Scrubbing
//
// Freed regions and the tails cut off by a shrink are overwritten with
// PoisonByte so stale reads through dangling handles are detectably wrong
// rather than silently plausible. Reallocate leaves its dead source region
// unscrubbed by default; SetScrubOnReallocate(true) makes every invalidation
// path scrub uniformly. Scrubbing is a debugging aid, not a memory safety
// mechanism.
//
// # Errors
//
// Two sentinel errors cover every failure. ErrOutOfMemory is returned by
// Allocate and Reallocate when the request exceeds the backing bound; it is
// terminal for the call, never retried. ErrContractViolation is returned
// where the original design left behavior undefined: double free, operating
// on a foreign or dead handle, misaligned requests, use after Release, and
// detected overlapping calls.
//
// # Thread Safety
//
// None, by contract rather than omission. Every operation must complete
// before the next begins; invoking any operation from more than one logical
// thread of control at a time is a contract violation. No locking is
// implemented because none is needed under this contract. Arena detects
// overlapping entry with a busy flag and reports ErrContractViolation
// instead of corrupting state.
//
// # Containers
//
// Buffer is a growable byte buffer written against the Allocator interface.
// Its appends reallocate, its truncations resize, and its splices combine
// the two, which makes it both a usable string builder and a faithful
// exerciser of the allocation contract:
//
//	b, _ := memarena.NewBuffer(h)
//	b.AppendString("Helloo")
//	b.AppendString("wworld!")
//	b.Splice(5, 7, []byte(", "))
//	fmt.Println(b.String()) // Hello, world!
package memarena
