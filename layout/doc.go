// Package layout is the escape hatch: it reads and overwrites a vec.Vector's
// three internal pointer fields by reinterpreting the Vector's memory,
// bypassing the container's own growth and shrink paths. On top of that it
// builds the two operations the module exists for — Drain, which extracts a
// Vector's block ownership as raw values and leaves the Vector empty, and
// Build, which reconstitutes a Vector from such values without allocating.
//
// # The structural assumption
//
// A Vector is assumed to be laid out as its allocator's inline storage
// (zero-sized for stateless allocators) followed immediately by three
// pointer-sized fields: data start, one past the initialized elements, one
// past the allocated block. FieldOffset derives where the three fields begin
// from the allocator type's size alone. That assumption is validated once
// per (element, allocator) type pair — the Vector's total size must equal
// the allocator's size plus three words, and the allocator's size must be
// word-aligned — and the package panics rather than operate on a layout it
// cannot account for.
//
// # Unchecked by design
//
// The force setters are bookkeeping overwrites only. They allocate nothing,
// initialize nothing, and destroy nothing. Setting a size beyond the
// initialized elements exposes uninitialized memory; setting a capacity
// short of the real block leaks its tail; setting one beyond it invites
// out-of-bounds writes on the next growth. None of this is detected in
// normal builds. Building with the "leakycheck" tag cross-checks every slot
// access against the Vector's public API and panics on disagreement; run the
// test suite both ways:
//
//	go test ./...
//	go test -tags leakycheck ./...
//
// This package is a single audited trapdoor for ownership interop, not a
// general technique. Code that is not moving buffer ownership across a
// boundary the container cannot cross has no business importing it.
//
// # Allocators with shared bookkeeping
//
// Drain captures the Vector's allocator by value. For allocators whose
// bookkeeping lives behind shared state (a Counting ledger, an Mmap
// registry), the captured copy still observes that state, and Build hands
// the same copy back — so teardown traffic after a round trip lands in the
// original ledger. Two such allocators comparing Equal is a promise their
// blocks may be mixed; do not weaken an allocator's Equal to make a
// round-trip "work", the teardown will free through the wrong bookkeeping.
package layout
