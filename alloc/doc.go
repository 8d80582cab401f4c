// Package alloc provides the allocator contract used by the vec and layout
// packages, along with the allocator implementations that ship with this
// module.
//
// # Allocator Interface
//
// The core abstraction is the Allocator interface, which supports:
//
//   - Allocate(n): Allocate one contiguous block for n elements
//   - Deallocate(p, n): Return a block previously returned by Allocate
//   - Equal(other): Report whether two allocators may free each other's blocks
//
// Allocators deal in element counts, not bytes. An allocator never tracks
// which elements of a block are initialized; that bookkeeping belongs to the
// container using it.
//
// # Implementations
//
// Heap: the default, stateless allocator
//
//   - Backed by the Go heap (make)
//   - Zero-sized, so a container embedding it spends no storage on it
//   - Pins every live block in a process-wide retain table so that memory
//     referenced only by raw pointers is not collected
//
// Mmap: page-granular allocator over anonymous private mappings
//
//   - Stateful: carries the page size and a mapping registry
//   - Deallocate unmaps immediately; use-after-free faults instead of
//     silently corrupting
//   - Unix-only
//
// Trace: wrapper that logs every allocate/deallocate through zap
//
// Counting: wrapper that records every call in a shared ledger, for tests
// that assert exact allocation traffic
//
// # Equality
//
// Equal is load-bearing: two allocators that compare equal promise that a
// block allocated by one may be deallocated by the other. Stateless
// allocators (Heap) compare equal unconditionally. Stateful allocators
// compare equal only when they share the same backing state — an Mmap
// allocator is equal to another only when both use the same mapping
// registry, and a Counting allocator only when both record to the same
// ledger. Mixing unequal allocators across an ownership transfer is a
// caller contract violation and is not detected at runtime.
//
// # Garbage Collection
//
// A block whose only reference is a raw pointer (for example, one held by an
// ownership token) is invisible to the garbage collector. Heap retains every
// outstanding block until Deallocate is called, so tokens are safe to hold
// indefinitely. Allocators that do not retain their blocks must not be used
// with element types containing Go pointers.
//
// # Thread Safety
//
// The retain table and mapping registry are safe for concurrent use. The
// allocators themselves hold no per-call mutable state.
package alloc
