// Package vec implements Vector, an allocator-backed dynamic array storing
// its elements in a single contiguous block obtained from an alloc.Allocator.
//
// Vector exists to have something whose buffer ownership can be transferred:
// its in-memory representation is exactly three pointer-sized fields — the
// block start, one past the last initialized element, and one past the
// allocated block — optionally preceded by inline allocator storage when the
// allocator type carries state. The layout package depends on that
// representation; changing the field set or their order breaks it and is
// caught by layout's structural validation.
//
// Vector is not a general-purpose container. It supports exactly the surface
// the ownership-transfer machinery needs: append with doubling growth,
// explicit reserve, indexed access, and an explicit Release to return the
// block to the allocator. Elements are stored outside the reach of the
// garbage collector's type information, so whether pointerful element types
// are safe depends entirely on the allocator (see the alloc package docs).
package vec
