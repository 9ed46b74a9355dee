package memarena

import (
	"math"
	"unsafe"
)

// Alloc allocates a zeroed T from a and returns a typed pointer together
// with the region that owns it. The pointer is valid until the region is
// freed or used as a Reallocate source.
func Alloc[T any](a Allocator) (*T, *Region, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	r, err := a.Allocate(size, align)
	if err != nil {
		return nil, nil, err
	}
	if size == 0 {
		return new(T), r, nil
	}
	clear(r.data)
	return (*T)(unsafe.Pointer(unsafe.SliceData(r.data))), r, nil
}

// AllocSlice allocates a slice of n elements of type T inside a single
// region. The elements are not initialized; like Allocate, contents are
// unspecified.
func AllocSlice[T any](a Allocator, n int) ([]T, *Region, error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	if n < 0 {
		return nil, nil, ErrContractViolation
	}
	if elemSize > 0 && n > math.MaxInt/elemSize {
		return nil, nil, ErrOutOfMemory
	}
	r, err := a.Allocate(elemSize*n, align)
	if err != nil {
		return nil, nil, err
	}
	if elemSize*n == 0 {
		return nil, r, nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(r.data))), n), r, nil
}
