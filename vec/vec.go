package vec

import (
	"fmt"
	"unsafe"

	"github.com/Notgnoshi/leakyvec/alloc"
)

// Vector is a contiguous growable array of T backed by an alloc.Allocator.
//
// Field order is load-bearing: the allocator (zero-sized for stateless
// allocator types) followed by exactly three pointer-sized fields. The
// layout package reinterprets a Vector's memory on that basis.
type Vector[T any, A alloc.Allocator[T]] struct {
	alloc  A
	start  unsafe.Pointer // first element slot, nil when capacity is 0
	finish unsafe.Pointer // one past the last initialized element
	capEnd unsafe.Pointer // one past the allocated block
}

// New returns an empty Vector using a. No allocation is performed.
// Zero-sized element types are not supported and panic here.
func New[T any, A alloc.Allocator[T]](a A) *Vector[T, A] {
	if alloc.SizeOf[T]() == 0 {
		panic("vec: zero-sized element types are not supported")
	}
	return &Vector[T, A]{alloc: a}
}

// NewSized returns a Vector holding n zeroed elements, allocated in one
// block of exactly n.
func NewSized[T any, A alloc.Allocator[T]](a A, n int) (*Vector[T, A], error) {
	v := New[T, A](a)
	if n == 0 {
		return v, nil
	}
	p, err := a.Allocate(n)
	if err != nil {
		return nil, fmt.Errorf("vec: sizing to %d elements: %w", n, err)
	}
	v.start = p
	v.finish = unsafe.Add(p, uintptr(n)*alloc.SizeOf[T]())
	v.capEnd = v.finish
	return v, nil
}

// Allocator returns the allocator that owns the Vector's block.
func (v *Vector[T, A]) Allocator() A { return v.alloc }

// Len returns the number of initialized elements.
func (v *Vector[T, A]) Len() int {
	return int((uintptr(v.finish) - uintptr(v.start)) / alloc.SizeOf[T]())
}

// Cap returns the number of elements the current block can hold.
func (v *Vector[T, A]) Cap() int {
	return int((uintptr(v.capEnd) - uintptr(v.start)) / alloc.SizeOf[T]())
}

// Data returns the block's base address, or nil when capacity is 0.
func (v *Vector[T, A]) Data() unsafe.Pointer { return v.start }

// At returns a pointer to element i. Panics when i is out of range.
func (v *Vector[T, A]) At(i int) *T {
	if i < 0 || i >= v.Len() {
		panic(fmt.Sprintf("vec: index %d out of range [0, %d)", i, v.Len()))
	}
	return (*T)(unsafe.Add(v.start, uintptr(i)*alloc.SizeOf[T]()))
}

// Set overwrites element i. Panics when i is out of range.
func (v *Vector[T, A]) Set(i int, x T) { *v.At(i) = x }

// Append adds x at the end, growing the block when full. Growth doubles the
// capacity (minimum 1): one Allocate of the new capacity, a copy of the
// initialized elements, and one Deallocate of the old block.
func (v *Vector[T, A]) Append(x T) error {
	if v.finish == v.capEnd {
		newCap := 2 * v.Cap()
		if newCap == 0 {
			newCap = 1
		}
		if err := v.Reserve(newCap); err != nil {
			return err
		}
	}
	*(*T)(v.finish) = x
	v.finish = unsafe.Add(v.finish, alloc.SizeOf[T]())
	return nil
}

// Reserve grows the block to hold at least n elements. It never shrinks and
// never changes Len. A no-op when n <= Cap.
func (v *Vector[T, A]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	p, err := v.alloc.Allocate(n)
	if err != nil {
		return fmt.Errorf("vec: reserving %d elements: %w", n, err)
	}
	length := v.Len()
	if length > 0 {
		copy(unsafe.Slice((*T)(p), length), unsafe.Slice((*T)(v.start), length))
	}
	if v.start != nil {
		v.alloc.Deallocate(v.start, v.Cap())
	}
	v.start = p
	v.finish = unsafe.Add(p, uintptr(length)*alloc.SizeOf[T]())
	v.capEnd = unsafe.Add(p, uintptr(n)*alloc.SizeOf[T]())
	return nil
}

// Release returns the block to the allocator and resets the Vector to the
// empty state. Safe to call on an empty Vector; after Release the Vector
// behaves as newly constructed.
func (v *Vector[T, A]) Release() {
	if v.start != nil {
		v.alloc.Deallocate(v.start, v.Cap())
	}
	v.start = nil
	v.finish = nil
	v.capEnd = nil
}
