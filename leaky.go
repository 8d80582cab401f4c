package leakyvec

import (
	"unsafe"

	"github.com/Notgnoshi/leakyvec/alloc"
	"github.com/Notgnoshi/leakyvec/layout"
	"github.com/Notgnoshi/leakyvec/vec"
)

// Parts is the raw ownership record of one buffer: everything needed to
// free it, or to rebuild a Vector on top of it.
//
// Whoever holds a Parts owns the block [Data, Data+Cap) and must consume it
// exactly once, either via FromParts or via Free.
type Parts[T any, A alloc.Allocator[T]] struct {
	Data  unsafe.Pointer
	Len   int
	Cap   int
	Alloc A
}

// Free releases the block directly through the allocator. The Parts must
// not be used again afterwards.
func (p Parts[T, A]) Free() {
	if p.Data == nil {
		return
	}
	p.Alloc.Deallocate(p.Data, p.Cap)
}

// Vec wraps a single vec.Vector, owning it exclusively, for the sole
// purpose of leaking its buffer or rebuilding one from leaked parts. It is
// not a general-purpose container wrapper.
//
// A Vec must have exactly one owner at a time. Pass the *Vec; never copy a
// dereferenced Vec, and never use a Vec from two goroutines without
// external synchronization.
type Vec[T any, A alloc.Allocator[T]] struct {
	inner *vec.Vector[T, A]
}

// From wraps an existing Vector, taking exclusive ownership. The caller
// must not use v directly afterwards. No allocation is performed.
func From[T any, A alloc.Allocator[T]](v *vec.Vector[T, A]) *Vec[T, A] {
	return &Vec[T, A]{inner: v}
}

// FromParts rebuilds a wrapped Vector directly on a leaked buffer. No
// allocation is performed; ownership of the block transfers to the returned
// Vec, and the Parts must not be consumed again.
func FromParts[T any, A alloc.Allocator[T]](p Parts[T, A]) *Vec[T, A] {
	return &Vec[T, A]{inner: layout.Build[T, A](p.Data, p.Len, p.Cap, p.Alloc)}
}

// Leak extracts the wrapped Vector's buffer as raw parts. Afterwards the
// wrapped Vector is valid, empty, and indistinguishable from one that never
// held anything, while the caller owns the returned block. Leaking an empty
// Vec returns a Parts with a nil Data, which Free and FromParts both accept.
func (l *Vec[T, A]) Leak() Parts[T, A] {
	data, length, capacity, a := layout.Drain(l.inner)
	return Parts[T, A]{Data: data, Len: length, Cap: capacity, Alloc: a}
}

// Take moves the wrapped Vector out to the caller. The Vec is left wrapping
// a fresh empty Vector with the same allocator, so it remains usable.
func (l *Vec[T, A]) Take() *vec.Vector[T, A] {
	v := l.inner
	l.inner = vec.New[T, A](v.Allocator())
	return v
}

// Ref returns the wrapped Vector for read access between transfer cycles.
// Callers must not grow, shrink, or release it through this reference.
func (l *Vec[T, A]) Ref() *vec.Vector[T, A] { return l.inner }

// Mut returns the wrapped Vector for ordinary mutable use between transfer
// cycles.
func (l *Vec[T, A]) Mut() *vec.Vector[T, A] { return l.inner }

// Close releases the wrapped Vector's buffer back to its allocator. After a
// Leak the wrapped Vector owns nothing and Close is a no-op; otherwise it
// deallocates exactly once. The Vec remains usable, wrapping the now-empty
// Vector.
func (l *Vec[T, A]) Close() {
	l.inner.Release()
}
