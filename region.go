package memarena

// PoisonByte is the sentinel written over invalidated bytes (freed regions
// and the tail cut off by a shrink). It makes stale reads detectably wrong
// rather than silently plausible. This is a debugging aid, not a memory
// protection mechanism.
const PoisonByte byte = 0xAA

// Region is an opaque handle to a contiguous byte span with a known length
// and alignment. A region is owned exclusively by the caller that allocated
// it: only that caller may resize, free, or reallocate it, and only through
// the allocator that produced it.
//
// A region's lifetime begins at Allocate and ends at Free, or implicitly
// when it is used as the source of a Reallocate. Dead handles are rejected
// by every operation.
type Region struct {
	data  []byte
	align int
	freed bool
	owner Allocator
}

func newRegion(data []byte, align int, owner Allocator) *Region {
	return &Region{data: data, align: align, owner: owner}
}

// Bytes returns the region's backing bytes. The slice is exactly Len() bytes
// long and must not be grown with append. After the region dies the slice
// still views the backing storage, so stale reads observe the poison pattern
// instead of plausible data.
func (r *Region) Bytes() []byte { return r.data }

// Len returns the region's current length in bytes.
func (r *Region) Len() int { return len(r.data) }

// Alignment returns the alignment the region was allocated with.
func (r *Region) Alignment() int { return r.align }

// Live reports whether the handle may still be used.
func (r *Region) Live() bool { return r != nil && !r.freed }

// usable reports whether r is a live handle owned by a.
func (r *Region) usable(a Allocator) bool {
	return r != nil && !r.freed && r.owner == a
}

// shrink truncates the region in place to n bytes, scrubbing the cut tail.
// Fails for growth and for out-of-range n.
func (r *Region) shrink(n int) bool {
	if n < 0 || n > len(r.data) {
		return false
	}
	scrub(r.data[n:])
	r.data = r.data[:n:n]
	return true
}

// invalidate marks the handle dead, optionally scrubbing its bytes first.
func (r *Region) invalidate(scrubBytes bool) {
	if scrubBytes {
		scrub(r.data)
	}
	r.freed = true
}

func scrub(b []byte) {
	for i := range b {
		b[i] = PoisonByte
	}
}
