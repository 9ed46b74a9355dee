//go:build !unix

package memarena

// NewMappedArena falls back to a heap-backed Arena on platforms without
// anonymous mmap support.
func NewMappedArena(capacity int) (*Arena, error) {
	return NewArena(capacity), nil
}
