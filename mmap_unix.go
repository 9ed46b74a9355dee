//go:build unix

package memarena

import "golang.org/x/sys/unix"

// NewMappedArena creates an Arena whose backing slab is an anonymous private
// mapping instead of a Go-heap slab. Release unmaps the region and returns
// the pages to the OS immediately. If capacity <= 0, DefaultCapacity is used.
func NewMappedArena(capacity int) (*Arena, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	data, err := unix.Mmap(-1, 0, capacity, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &Arena{
		buf:   data,
		unmap: func() error { return unix.Munmap(data) },
	}, nil
}
