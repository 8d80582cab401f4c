package alloc

import (
	"sync"
	"unsafe"
)

// CallRecord is one observed allocator call.
type CallRecord struct {
	Ptr unsafe.Pointer
	N   int
}

// CallLog is the shared ledger behind one or more Counting allocators.
// Copies of a Counting allocator all record here, so a test observes the
// complete traffic no matter how many times the allocator was copied while
// being threaded through a container.
type CallLog struct {
	mu     sync.Mutex
	allocs []CallRecord
	frees  []CallRecord
}

func (l *CallLog) recordAlloc(p unsafe.Pointer, n int) {
	l.mu.Lock()
	l.allocs = append(l.allocs, CallRecord{Ptr: p, N: n})
	l.mu.Unlock()
}

func (l *CallLog) recordFree(p unsafe.Pointer, n int) {
	l.mu.Lock()
	l.frees = append(l.frees, CallRecord{Ptr: p, N: n})
	l.mu.Unlock()
}

// Allocs returns a copy of every Allocate call observed so far, in order.
func (l *CallLog) Allocs() []CallRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]CallRecord(nil), l.allocs...)
}

// Frees returns a copy of every Deallocate call observed so far, in order.
func (l *CallLog) Frees() []CallRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]CallRecord(nil), l.frees...)
}

// AllocCalls counts Allocate calls requesting exactly n elements.
func (l *CallLog) AllocCalls(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, c := range l.allocs {
		if c.N == n {
			count++
		}
	}
	return count
}

// FreeCalls counts Deallocate calls releasing exactly n elements.
func (l *CallLog) FreeCalls(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, c := range l.frees {
		if c.N == n {
			count++
		}
	}
	return count
}

// Counting records every call in a CallLog and delegates the actual work to
// a Heap allocator. Tests use it to assert exact allocate/deallocate
// traffic across ownership transfers.
//
// Counting carries one pointer of state, so unlike Heap it occupies storage
// inside a container embedding it. Two Counting allocators are
// interchangeable only when they share a ledger; this is deliberate — an
// allocator whose bookkeeping lives behind shared state must not have its
// blocks mixed with an unrelated instance's, and equality is how that rule
// is expressed.
type Counting[T any] struct {
	log *CallLog
}

// NewCounting returns a Counting allocator with a fresh ledger.
func NewCounting[T any]() Counting[T] {
	return Counting[T]{log: &CallLog{}}
}

// Log exposes the ledger for assertions.
func (c Counting[T]) Log() *CallLog { return c.log }

func (c Counting[T]) Allocate(n int) (unsafe.Pointer, error) {
	p, err := Heap[T]{}.Allocate(n)
	if err != nil {
		return nil, err
	}
	c.log.recordAlloc(p, n)
	return p, nil
}

func (c Counting[T]) Deallocate(p unsafe.Pointer, n int) {
	if p == nil {
		return
	}
	c.log.recordFree(p, n)
	Heap[T]{}.Deallocate(p, n)
}

// Equal reports whether other is a Counting recording to the same ledger.
func (c Counting[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(Counting[T])
	return ok && o.log == c.log
}
