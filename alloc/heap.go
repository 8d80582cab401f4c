package alloc

import (
	"sync"
	"unsafe"
)

// heapBlocks pins every outstanding Heap block so the garbage collector
// cannot reclaim memory that is referenced only through raw pointers.
// Keyed by the block's base address; the value is the backing slice.
var heapBlocks sync.Map

// Heap is the default allocator. It is stateless and zero-sized, so a
// container storing one by value spends no memory on it and every Heap
// compares equal to every other.
//
// Blocks come from the Go heap and stay reachable until Deallocate unpins
// them. Deallocating a block does not return memory eagerly; it only makes
// the block collectible again.
type Heap[T any] struct{}

func (Heap[T]) Allocate(n int) (unsafe.Pointer, error) {
	if n <= 0 {
		return nil, ErrBadCount
	}
	if _, ok := blockBytes[T](n + 1); !ok {
		return nil, ErrOverflow
	}
	// One element of slack: callers store one-past-the-end pointers into the
	// block, and those must keep pointing inside the allocation or the
	// runtime's invalid-pointer check can trip during a collection.
	block := make([]T, n+1)
	p := unsafe.Pointer(&block[0])
	heapBlocks.Store(uintptr(p), block)
	return p, nil
}

func (Heap[T]) Deallocate(p unsafe.Pointer, n int) {
	if p == nil {
		return
	}
	heapBlocks.Delete(uintptr(p))
}

// Equal reports true for any other Heap of the same element type.
func (Heap[T]) Equal(other Allocator[T]) bool {
	_, ok := other.(Heap[T])
	return ok
}
