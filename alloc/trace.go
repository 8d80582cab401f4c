package alloc

import (
	"unsafe"

	"go.uber.org/zap"
)

// Trace wraps another allocator and logs every call with the element count,
// byte size, and block address. Useful for watching allocation traffic cross
// an ownership boundary without attaching a debugger.
type Trace[T any] struct {
	inner Allocator[T]
	log   *zap.Logger
}

// NewTrace returns a Trace delegating to inner. A nil logger disables
// output.
func NewTrace[T any](inner Allocator[T], log *zap.Logger) Trace[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return Trace[T]{inner: inner, log: log.Named("alloc")}
}

func (t Trace[T]) Allocate(n int) (unsafe.Pointer, error) {
	p, err := t.inner.Allocate(n)
	if err != nil {
		t.log.Error("allocate failed",
			zap.Int("elements", n),
			zap.Error(err))
		return nil, err
	}
	t.log.Debug("allocate",
		zap.Int("elements", n),
		zap.Uint64("bytes", uint64(n)*uint64(SizeOf[T]())),
		zap.Uintptr("addr", uintptr(p)))
	return p, nil
}

func (t Trace[T]) Deallocate(p unsafe.Pointer, n int) {
	t.log.Debug("deallocate",
		zap.Int("elements", n),
		zap.Uint64("bytes", uint64(n)*uint64(SizeOf[T]())),
		zap.Uintptr("addr", uintptr(p)))
	t.inner.Deallocate(p, n)
}

// Equal reports whether other is a Trace whose inner allocator is
// interchangeable with this one's. The loggers do not participate.
func (t Trace[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(Trace[T])
	return ok && t.inner.Equal(o.inner)
}
