package memarena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// scrubControl is implemented by both allocators; used to test the uniform
// scrub mode.
type scrubControl interface {
	Allocator
	SetScrubOnReallocate(on bool)
}

func implementations(t *testing.T) map[string]func() scrubControl {
	t.Helper()
	return map[string]func() scrubControl{
		"Heap": func() scrubControl { return NewHeap() },
		"Arena": func() scrubControl {
			a := NewArena(1 << 21)
			t.Cleanup(func() { _ = a.Release() })
			return a
		},
	}
}

func fillSeq(b []byte) {
	for i := range b {
		b[i] = byte(i + 1)
	}
}

func TestAllocateRoundTripSize(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			for _, size := range []int{0, 1, 7, 8, 63, 64, 1000, 4096} {
				r, err := a.Allocate(size, 8)
				require.NoError(t, err)
				require.Equal(t, size, r.Len())
				require.Equal(t, 8, r.Alignment())
				require.True(t, r.Live())
			}
		})
	}
}

func TestAllocateAlignment(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			for align := 1; align <= 4096; align <<= 1 {
				r, err := a.Allocate(17, align)
				require.NoError(t, err)
				addr := uintptr(unsafe.Pointer(unsafe.SliceData(r.Bytes())))
				require.Zero(t, addr%uintptr(align), "align=%d", align)
			}
		})
	}
}

func TestAllocateNoAliasing(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r1, err := a.Allocate(32, 8)
			require.NoError(t, err)
			r2, err := a.Allocate(32, 8)
			require.NoError(t, err)
			fillSeq(r1.Bytes())
			scrub(r2.Bytes())
			require.Equal(t, byte(1), r1.Bytes()[0], "writes through r2 leaked into r1")
			require.Equal(t, byte(32), r1.Bytes()[31])
			require.Equal(t, PoisonByte, r2.Bytes()[0])
		})
	}
}

func TestAllocateBadRequests(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			_, err := a.Allocate(-1, 8)
			require.ErrorIs(t, err, ErrContractViolation)
			_, err = a.Allocate(8, 0)
			require.ErrorIs(t, err, ErrContractViolation)
			_, err = a.Allocate(8, 3)
			require.ErrorIs(t, err, ErrContractViolation)
			_, err = a.Allocate(8, -8)
			require.ErrorIs(t, err, ErrContractViolation)
		})
	}
}

func TestResizeShrinkScrubsTail(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(10, 1)
			require.NoError(t, err)
			raw := r.Bytes()
			fillSeq(raw)

			require.True(t, a.Resize(r, 5))
			require.Equal(t, 5, r.Len())
			require.Equal(t, []byte{1, 2, 3, 4, 5}, r.Bytes())
			for i := 5; i < 10; i++ {
				require.Equal(t, PoisonByte, raw[i], "byte %d not scrubbed", i)
			}
		})
	}
}

func TestResizeGrowthRejected(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(10, 1)
			require.NoError(t, err)
			fillSeq(r.Bytes())

			require.False(t, a.Resize(r, 15))
			require.Equal(t, 10, r.Len())
			require.Equal(t, byte(10), r.Bytes()[9])
			require.True(t, r.Live())
		})
	}
}

func TestResizeShrinkChain(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(16, 1)
			require.NoError(t, err)
			for n := 16; n >= 0; n-- {
				require.True(t, a.Resize(r, n), "shrink to %d", n)
				require.Equal(t, n, r.Len())
			}
			require.False(t, a.Resize(r, 1))
		})
	}
}

func TestFreeScrubsEveryByte(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(64, 8)
			require.NoError(t, err)
			raw := r.Bytes()
			fillSeq(raw)

			require.NoError(t, a.Free(r))
			require.False(t, r.Live())
			for i, b := range raw {
				require.Equal(t, PoisonByte, b, "byte %d not scrubbed", i)
			}
		})
	}
}

func TestDeadHandleRejected(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(8, 1)
			require.NoError(t, err)
			require.NoError(t, a.Free(r))

			require.ErrorIs(t, a.Free(r), ErrContractViolation)
			require.False(t, a.Resize(r, 4))
			_, err = a.Reallocate(r, 16)
			require.ErrorIs(t, err, ErrContractViolation)
		})
	}
}

func TestForeignHandleRejected(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			other := NewHeap()
			r, err := other.Allocate(8, 1)
			require.NoError(t, err)

			require.False(t, a.Resize(r, 4))
			require.ErrorIs(t, a.Free(r), ErrContractViolation)
			_, err = a.Reallocate(r, 16)
			require.ErrorIs(t, err, ErrContractViolation)
			require.True(t, r.Live())
		})
	}
}

func TestReallocatePrefixPreserved(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(10, 8)
			require.NoError(t, err)
			fillSeq(r.Bytes())

			// Shrinking reallocate keeps the prefix.
			r2, err := a.Reallocate(r, 6)
			require.NoError(t, err)
			require.Equal(t, 6, r2.Len())
			require.Equal(t, 8, r2.Alignment())
			require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, r2.Bytes())
			require.False(t, r.Live())

			// Growing reallocate keeps the prefix too.
			r3, err := a.Reallocate(r2, 20)
			require.NoError(t, err)
			require.Equal(t, 20, r3.Len())
			require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, r3.Bytes()[:6])
		})
	}
}

func TestReallocateDescendingChain(t *testing.T) {
	const n = 64
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			want := make([]byte, n)
			fillSeq(want)

			r, err := a.Allocate(n, 1)
			require.NoError(t, err)
			copy(r.Bytes(), want)

			for size := n; size >= 0; size-- {
				r, err = a.Reallocate(r, size)
				require.NoError(t, err, "reallocate to %d", size)
				require.Equal(t, size, r.Len())
				require.Equal(t, want[:size], r.Bytes())
			}
		})
	}
}

func TestReallocateSourceUnscrubbedByDefault(t *testing.T) {
	// The original design scrubs on free and shrink but not on the
	// reallocate path; preserved as documented.
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(8, 1)
			require.NoError(t, err)
			raw := r.Bytes()
			fillSeq(raw)

			_, err = a.Reallocate(r, 16)
			require.NoError(t, err)
			require.False(t, r.Live())
			require.Equal(t, byte(1), raw[0])
			require.Equal(t, byte(8), raw[7])
		})
	}
}

func TestScrubOnReallocate(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			a.SetScrubOnReallocate(true)
			r, err := a.Allocate(8, 1)
			require.NoError(t, err)
			raw := r.Bytes()
			fillSeq(raw)

			r2, err := a.Reallocate(r, 16)
			require.NoError(t, err)
			for i, b := range raw {
				require.Equal(t, PoisonByte, b, "byte %d not scrubbed", i)
			}
			// The new region got its copy before the source was scrubbed.
			require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, r2.Bytes()[:8])
		})
	}
}

func TestScenarioShrinkTen(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(10, 1)
			require.NoError(t, err)
			require.True(t, a.Resize(r, 5))
			require.Equal(t, 5, r.Len())
		})
	}
}

func TestScenarioGrowTenRejected(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(10, 1)
			require.NoError(t, err)
			require.False(t, a.Resize(r, 15))
			require.Equal(t, 10, r.Len())
		})
	}
}

func TestScenarioReallocateWalk(t *testing.T) {
	for name, mk := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			a := mk()
			r, err := a.Allocate(1, 1)
			require.NoError(t, err)
			for size := 0; size < 1000; size++ {
				r, err = a.Reallocate(r, size)
				require.NoError(t, err, "reallocate to %d", size)
				require.Equal(t, size, r.Len())
			}
			require.NoError(t, a.Free(r))
		})
	}
}

func TestHeapLimit(t *testing.T) {
	h := NewBoundedHeap(100)

	r, err := h.Allocate(100, 1)
	require.NoError(t, err)
	_, err = h.Allocate(101, 1)
	require.ErrorIs(t, err, ErrOutOfMemory)

	// Reallocate is bounded by the same limit.
	_, err = h.Reallocate(r, 101)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.True(t, r.Live(), "failed reallocate must not kill the source")
}
