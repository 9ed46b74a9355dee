package memarena

import "errors"

var (
	// ErrOutOfMemory indicates the request cannot be satisfied against the
	// backing bound: the arena is exhausted or a heap limit was exceeded.
	// Never retried or recovered internally.
	ErrOutOfMemory = errors.New("memarena: out of memory")

	// ErrContractViolation indicates the caller broke the allocator contract:
	// a freed or foreign handle, a misaligned request, use after Release,
	// or an operation overlapping another in-flight operation.
	ErrContractViolation = errors.New("memarena: contract violation")
)
