//go:build unix

package alloc

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapRegistry tracks live mappings so Deallocate can recover the exact
// []byte that Mmap returned for a base address.
type mmapRegistry struct {
	mu     sync.Mutex
	blocks map[uintptr][]byte
}

// Mmap allocates element blocks out of anonymous private mappings, one
// mapping per block, rounded up to whole pages. Deallocate unmaps
// immediately, so stale pointers fault rather than aliasing recycled memory.
//
// Mmap is stateful: it carries the page size and a pointer to its mapping
// registry, and two Mmap allocators are interchangeable only when they share
// a registry. Copies made from the same NewMmap result share one registry
// and compare equal.
//
// The mapped pages are outside the Go heap, so element types containing Go
// pointers must not be stored through this allocator.
type Mmap[T any] struct {
	pageSize uintptr
	reg      *mmapRegistry
}

// NewMmap returns an Mmap allocator with a fresh mapping registry.
func NewMmap[T any]() Mmap[T] {
	return Mmap[T]{
		pageSize: uintptr(os.Getpagesize()),
		reg:      &mmapRegistry{blocks: make(map[uintptr][]byte)},
	}
}

func (m Mmap[T]) Allocate(n int) (unsafe.Pointer, error) {
	if n <= 0 {
		return nil, ErrBadCount
	}
	bytes, ok := blockBytes[T](n)
	if !ok {
		return nil, ErrOverflow
	}
	mapped := (bytes + m.pageSize - 1) &^ (m.pageSize - 1)
	block, err := unix.Mmap(-1, 0, int(mapped),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrExhausted, mapped, err)
	}
	p := unsafe.Pointer(&block[0])
	m.reg.mu.Lock()
	m.reg.blocks[uintptr(p)] = block
	m.reg.mu.Unlock()
	return p, nil
}

func (m Mmap[T]) Deallocate(p unsafe.Pointer, n int) {
	if p == nil {
		return
	}
	m.reg.mu.Lock()
	block, ok := m.reg.blocks[uintptr(p)]
	delete(m.reg.blocks, uintptr(p))
	m.reg.mu.Unlock()
	if !ok {
		return
	}
	// Munmap only fails for addresses we did not map.
	_ = unix.Munmap(block)
}

// Equal reports whether other is an Mmap sharing this allocator's mapping
// registry.
func (m Mmap[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(Mmap[T])
	return ok && o.reg == m.reg
}

// Live returns the number of mappings currently outstanding.
func (m Mmap[T]) Live() int {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	return len(m.reg.blocks)
}
