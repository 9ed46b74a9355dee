package memarena

// Buffer is a growable byte buffer built entirely on the four allocator
// operations: growth goes through Reallocate, truncation through Resize.
// It is the kind of container collaborator the Allocator interface exists
// to serve, and it inherits the allocator's sequential-only contract.
//
// The buffer keeps its region sized exactly to the content, so every
// growing operation replaces the region and every shrinking operation
// scrubs the cut tail.
type Buffer struct {
	a Allocator
	r *Region
}

// NewBuffer creates an empty buffer drawing storage from a.
func NewBuffer(a Allocator) (*Buffer, error) {
	r, err := a.Allocate(0, 1)
	if err != nil {
		return nil, err
	}
	return &Buffer{a: a, r: r}, nil
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return b.r.Len() }

// Bytes returns the buffer's contents. The slice is invalidated by the next
// growing or splicing operation.
func (b *Buffer) Bytes() []byte { return b.r.Bytes() }

// String returns a copy of the buffer's contents as a string.
func (b *Buffer) String() string { return string(b.r.Bytes()) }

// Append grows the buffer by reallocating and writes p after the existing
// content.
func (b *Buffer) Append(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	old := b.r.Len()
	nr, err := b.a.Reallocate(b.r, old+len(p))
	if err != nil {
		return err
	}
	copy(nr.Bytes()[old:], p)
	b.r = nr
	return nil
}

// AppendString appends the bytes of s.
func (b *Buffer) AppendString(s string) error { return b.Append([]byte(s)) }

// Truncate shrinks the buffer to n bytes in place. Growing through Truncate
// is a contract violation.
func (b *Buffer) Truncate(n int) error {
	if !b.a.Resize(b.r, n) {
		return ErrContractViolation
	}
	return nil
}

// Splice replaces b[start:end] with repl, shifting the tail as needed.
// Shrinking splices move the tail and truncate in place; growing splices
// reallocate first and then move the tail inside the new region.
func (b *Buffer) Splice(start, end int, repl []byte) error {
	n := b.r.Len()
	if start < 0 || end < start || end > n {
		return ErrContractViolation
	}
	newLen := n - (end - start) + len(repl)
	switch {
	case newLen == n:
		copy(b.r.Bytes()[start:end], repl)
	case newLen < n:
		cur := b.r.Bytes()
		copy(cur[start+len(repl):], cur[end:])
		copy(cur[start:], repl)
		if !b.a.Resize(b.r, newLen) {
			return ErrContractViolation
		}
	default:
		nr, err := b.a.Reallocate(b.r, newLen)
		if err != nil {
			return err
		}
		out := nr.Bytes()
		copy(out[start+len(repl):], out[end:n])
		copy(out[start:], repl)
		b.r = nr
	}
	return nil
}

// Free releases the buffer's storage. The buffer must not be used afterwards.
func (b *Buffer) Free() error { return b.a.Free(b.r) }
