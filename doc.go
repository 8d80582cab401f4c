// Package leakyvec transfers ownership of a vec.Vector's contiguous buffer
// across boundaries the container itself cannot cross, without copying
// elements and without freeing the block.
//
// Leak extracts a wrapped Vector's block as raw parts — base pointer,
// length, capacity, allocator — leaving the Vector valid but empty.
// FromParts performs the inverse: it rebuilds a wrapped Vector directly on
// those parts with no allocation. Between the two, the block belongs to
// whoever holds the Parts value, and must be consumed exactly once: handed
// to FromParts, or freed manually with Parts.Free. Consuming a Parts twice,
// or never, is a double free or a leak by construction; nothing here guards
// against it.
//
//	v, _ := vec.NewSized(alloc.Heap[int]{}, 4)
//	lv := leakyvec.From(v)
//	parts := lv.Leak()
//
//	// ... hand parts across the boundary ...
//
//	lv2 := leakyvec.FromParts(parts)
//	restored := lv2.Take()
//
// A Vec owns its Vector exclusively. Hand-off between goroutines must be
// synchronized externally; at most one live, unconsumed Parts may exist for
// a given block at any time. These rules are discipline, not types.
package leakyvec
