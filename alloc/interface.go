package alloc

import (
	"math"
	"unsafe"
)

// Allocator hands out and reclaims contiguous blocks of T. Counts are in
// elements, never bytes.
//
// Implementations must be value types safe to copy: every copy of an
// allocator must be interchangeable with the original (Equal reports true)
// and must observe the same backing state.
type Allocator[T any] interface {
	// Allocate returns a pointer to a zeroed block with room for n elements
	// of T. It fails with ErrBadCount, ErrOverflow, or ErrExhausted (possibly
	// wrapped) and never returns a partial block.
	Allocate(n int) (unsafe.Pointer, error)

	// Deallocate returns a block previously obtained from Allocate (or from
	// an allocator Equal to this one). n must be the element count the block
	// was allocated with. Deallocate does not fail; passing a pointer this
	// allocator does not own is a caller contract violation.
	Deallocate(p unsafe.Pointer, n int)

	// Equal reports whether blocks may be exchanged between the two
	// allocators.
	Equal(other Allocator[T]) bool
}

// SizeOf returns the in-memory size of one element of T.
func SizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// blockBytes converts an element count to a byte size, reporting overflow.
// Block sizes are capped at the maximum int so they remain valid slice
// lengths.
func blockBytes[T any](n int) (uintptr, bool) {
	size := SizeOf[T]()
	if size == 0 {
		return 0, true
	}
	if uintptr(n) > uintptr(math.MaxInt)/size {
		return 0, false
	}
	return uintptr(n) * size, true
}
