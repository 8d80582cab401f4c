package layout

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/Notgnoshi/leakyvec/alloc"
	"github.com/Notgnoshi/leakyvec/vec"
)

// Test_FieldOffset_StatelessAllocator: a zero-sized allocator occupies no
// storage, so the pointer fields start at word 0.
func Test_FieldOffset_StatelessAllocator(t *testing.T) {
	require.Zero(t, FieldOffset[int, alloc.Heap[int]]())
	require.Zero(t, FieldOffset[string, alloc.Heap[string]]())
}

// Test_FieldOffset_StatefulAllocator: inline allocator state shifts the
// fields by the allocator's size in words.
func Test_FieldOffset_StatefulAllocator(t *testing.T) {
	// Counting carries one ledger pointer
	require.EqualValues(t, 1, FieldOffset[int, alloc.Counting[int]]())

	// Trace carries an allocator interface (two words) and a logger pointer
	require.EqualValues(t, 3, FieldOffset[int, alloc.Trace[int]]())

	counting := unsafe.Sizeof(alloc.Counting[int]{})
	require.Equal(t, counting/unsafe.Sizeof(uintptr(0)), FieldOffset[int, alloc.Counting[int]]())
}

// oddAlloc carries one byte of state, so its size is not a whole number of
// words and no word offset can place the pointer fields after it.
type oddAlloc struct{ pad byte }

func (oddAlloc) Allocate(n int) (unsafe.Pointer, error) { return alloc.Heap[int]{}.Allocate(n) }
func (oddAlloc) Deallocate(p unsafe.Pointer, n int)     { alloc.Heap[int]{}.Deallocate(p, n) }
func (oddAlloc) Equal(other alloc.Allocator[int]) bool  { _, ok := other.(oddAlloc); return ok }

// Test_FieldOffset_RefusesUnalignedAllocator: when the allocator's size
// breaks the structural assumption, the first offset query must panic
// instead of reinterpreting memory at a wrong offset.
func Test_FieldOffset_RefusesUnalignedAllocator(t *testing.T) {
	require.Panics(t, func() { FieldOffset[int, oddAlloc]() })

	// The failure is not memoized; every query refuses again.
	require.Panics(t, func() { FieldOffset[int, oddAlloc]() })
}

// Test_RawSlot_MatchesPublicAPI: the raw slots must agree with what the
// Vector reports through its own methods, for both offsets.
func Test_RawSlot_MatchesPublicAPI(t *testing.T) {
	t.Run("stateless", func(t *testing.T) {
		v, err := vec.NewSized[int64](alloc.Heap[int64]{}, 5)
		require.NoError(t, err)
		defer v.Release()
		require.NoError(t, v.Reserve(8))

		checkSlots(t, v)
	})

	t.Run("stateful", func(t *testing.T) {
		v, err := vec.NewSized[int64](alloc.NewCounting[int64](), 5)
		require.NoError(t, err)
		defer v.Release()
		require.NoError(t, v.Reserve(8))

		checkSlots(t, v)
	})
}

func checkSlots[T any, A alloc.Allocator[T]](t *testing.T, v *vec.Vector[T, A]) {
	t.Helper()
	require.Equal(t, DataStart(v), *RawSlot(v, FieldDataStart))
	require.Equal(t, DataEnd(v), *RawSlot(v, FieldDataEnd))
	require.Equal(t, CapacityEnd(v), *RawSlot(v, FieldCapacityEnd))
	require.Equal(t, v.Data(), *RawSlot(v, FieldDataStart))
}

// Test_ForceSetSize_Consistency: after a force-set to k <= capacity, the
// public API reports k and the data end slot is data start plus k elements.
func Test_ForceSetSize_Consistency(t *testing.T) {
	v, err := vec.NewSized[int32](alloc.Heap[int32]{}, 4)
	require.NoError(t, err)
	defer v.Release()
	require.NoError(t, v.Reserve(10))

	ForceSetSize(v, 7)
	require.Equal(t, 7, v.Len())
	require.Equal(t,
		unsafe.Add(*RawSlot(v, FieldDataStart), 7*unsafe.Sizeof(int32(0))),
		*RawSlot(v, FieldDataEnd))

	// Shrink back; the first four elements are the initialized ones
	ForceSetSize(v, 4)
	require.Equal(t, 4, v.Len())
	require.Equal(t, 10, v.Cap())
}

func Test_ForceSetCapacity_Consistency(t *testing.T) {
	v, err := vec.NewSized[int32](alloc.Heap[int32]{}, 4)
	require.NoError(t, err)
	require.NoError(t, v.Reserve(10))

	ForceSetCapacity(v, 6)
	require.Equal(t, 6, v.Cap())
	require.Equal(t,
		unsafe.Add(*RawSlot(v, FieldDataStart), 6*unsafe.Sizeof(int32(0))),
		*RawSlot(v, FieldCapacityEnd))

	// Restore the true block size before releasing, or the tail would leak
	ForceSetCapacity(v, 10)
	v.Release()
}

// Test_ForceSetDataStart_Order: data start first, then size and capacity,
// which are relative to it.
func Test_ForceSetDataStart_Order(t *testing.T) {
	v, err := vec.NewSized[int](alloc.Heap[int]{}, 3)
	require.NoError(t, err)
	block := v.Data()

	ForceSetDataStart(v, nil)
	ForceSetSize(v, 0)
	ForceSetCapacity(v, 0)
	require.Nil(t, v.Data())
	require.Zero(t, v.Len())
	require.Zero(t, v.Cap())

	ForceSetDataStart(v, block)
	ForceSetSize(v, 3)
	ForceSetCapacity(v, 3)
	require.Equal(t, block, v.Data())
	require.Equal(t, 3, v.Len())

	v.Release()
}

// Test_Drain_LeavesCanonicalEmpty: the drained vector owns nothing and is
// indistinguishable from a fresh one.
func Test_Drain_LeavesCanonicalEmpty(t *testing.T) {
	c := alloc.NewCounting[int]()
	v, err := vec.NewSized[int](c, 4)
	require.NoError(t, err)
	block := v.Data()

	start, size, capacity, a := Drain(v)

	require.Equal(t, block, start)
	require.Equal(t, 4, size)
	require.Equal(t, 4, capacity)
	require.True(t, a.Equal(c))

	require.Nil(t, v.Data())
	require.Zero(t, v.Len())
	require.Zero(t, v.Cap())

	// The block was not freed
	require.Empty(t, c.Log().Frees())

	a.Deallocate(start, capacity)
}

// Test_Build_NoAllocation: reconstruction reports exactly the drained
// values with zero allocator traffic.
func Test_Build_NoAllocation(t *testing.T) {
	c := alloc.NewCounting[int16]()
	v, err := vec.NewSized[int16](c, 4)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		v.Set(i, int16(i+1))
	}
	require.NoError(t, v.Reserve(10))

	start, size, capacity, a := Drain(v)
	trafficBefore := len(c.Log().Allocs()) + len(c.Log().Frees())

	rebuilt := Build[int16](start, size, capacity, a)

	require.Equal(t, trafficBefore, len(c.Log().Allocs())+len(c.Log().Frees()),
		"drain and build must not touch the allocator")
	require.Equal(t, start, rebuilt.Data())
	require.Equal(t, 4, rebuilt.Len())
	require.Equal(t, 10, rebuilt.Cap())
	for i := 0; i < 4; i++ {
		require.Equal(t, int16(i+1), *rebuilt.At(i))
	}

	rebuilt.Release()
	require.Equal(t, 1, c.Log().FreeCalls(10))
}

// Test_RoundTrip_Identity: drain then build yields the same block, not a
// copy.
func Test_RoundTrip_Identity(t *testing.T) {
	v, err := vec.NewSized[uint64](alloc.Heap[uint64]{}, 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		v.Set(i, uint64(100+i))
	}
	block := v.Data()

	rebuilt := Build[uint64](Drain(v))

	require.Equal(t, block, rebuilt.Data())
	require.EqualValues(t, 102, *rebuilt.At(2))

	rebuilt.Release()
}

// Test_Build_EmptyToken: the canonical empty state round-trips too.
func Test_Build_EmptyToken(t *testing.T) {
	v := vec.New[int](alloc.Heap[int]{})

	rebuilt := Build[int](Drain(v))

	require.Nil(t, rebuilt.Data())
	require.Zero(t, rebuilt.Len())
	require.Zero(t, rebuilt.Cap())
}
