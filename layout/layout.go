package layout

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/Notgnoshi/leakyvec/alloc"
	"github.com/Notgnoshi/leakyvec/vec"
)

// Field selects one of the three internal pointer slots of a vec.Vector.
type Field int

const (
	// FieldDataStart is the pointer to the first element slot.
	FieldDataStart Field = iota
	// FieldDataEnd is the pointer one past the last initialized element.
	FieldDataEnd
	// FieldCapacityEnd is the pointer one past the allocated block.
	FieldCapacityEnd
)

const wordSize = unsafe.Sizeof(unsafe.Pointer(nil))

// fieldOffsets memoizes the validated word offset per (element, allocator)
// type pair, keyed by the instantiated Vector type.
var fieldOffsets sync.Map // reflect.Type -> uintptr

// FieldOffset returns where the three pointer fields begin inside a
// Vector[T, A], in pointer-sized words: 0 for a zero-sized (stateless)
// allocator type, otherwise the allocator's size in words.
//
// The first call for a given type pair validates the structural assumption
// and panics if the Vector's real layout cannot match: this is a fatal
// configuration error, not a recoverable one, and no layout operation on
// that pair is sound.
func FieldOffset[T any, A alloc.Allocator[T]]() uintptr {
	key := reflect.TypeOf((*vec.Vector[T, A])(nil))
	if off, ok := fieldOffsets.Load(key); ok {
		return off.(uintptr)
	}

	allocSize := unsafe.Sizeof(*new(A))
	total := unsafe.Sizeof(vec.Vector[T, A]{})
	if allocSize%wordSize != 0 {
		panic(fmt.Sprintf(
			"layout: allocator type %v has size %d, not a multiple of the word size %d; field offsets would be wrong",
			reflect.TypeOf((*A)(nil)).Elem(), allocSize, wordSize))
	}
	if total != allocSize+3*wordSize {
		panic(fmt.Sprintf(
			"layout: %v has size %d, want %d (allocator %d + three words); refusing to reinterpret an unknown layout",
			key.Elem(), total, allocSize+3*wordSize, allocSize))
	}

	off := allocSize / wordSize
	fieldOffsets.Store(key, off)
	return off
}

// slot returns the raw word of v holding the given field, with no
// cross-checking. Internal callers use it while v is mid-update and the
// other fields are transiently stale.
func slot[T any, A alloc.Allocator[T]](v *vec.Vector[T, A], f Field) *unsafe.Pointer {
	word := FieldOffset[T, A]() + uintptr(f)
	return (*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(v), word*wordSize))
}

// RawSlot returns a mutable reference to one of v's three pointer fields.
// With the "leakycheck" build tag the slot's current value is checked
// against the public-API-derived value before returning.
func RawSlot[T any, A alloc.Allocator[T]](v *vec.Vector[T, A], f Field) *unsafe.Pointer {
	p := slot(v, f)
	switch f {
	case FieldDataStart:
		assertSame("data start", *p, DataStart(v))
	case FieldDataEnd:
		assertSame("data end", *p, DataEnd(v))
	case FieldCapacityEnd:
		assertSame("capacity end", *p, CapacityEnd(v))
	}
	return p
}

// DataStart returns the first element slot, derived from the public API.
func DataStart[T any, A alloc.Allocator[T]](v *vec.Vector[T, A]) unsafe.Pointer {
	return v.Data()
}

// DataEnd returns one past the last initialized element, derived from the
// public API.
func DataEnd[T any, A alloc.Allocator[T]](v *vec.Vector[T, A]) unsafe.Pointer {
	return elementAt[T](v.Data(), v.Len())
}

// CapacityEnd returns one past the allocated block, derived from the public
// API.
func CapacityEnd[T any, A alloc.Allocator[T]](v *vec.Vector[T, A]) unsafe.Pointer {
	return elementAt[T](v.Data(), v.Cap())
}

// ForceSetDataStart overwrites v's data start slot. The data end and
// capacity end slots are not touched and now encode stale values relative to
// the old start; the caller must immediately follow with ForceSetSize and
// ForceSetCapacity before v is observed by anything else.
func ForceSetDataStart[T any, A alloc.Allocator[T]](v *vec.Vector[T, A], p unsafe.Pointer) {
	*slot(v, FieldDataStart) = p
	assertSame("data start after force-set", v.Data(), p)
}

// ForceSetSize overwrites v's data end slot to data start plus n elements.
// Requires the data start slot to already hold its final value. Purely a
// bookkeeping overwrite: growing the reported size past the initialized
// elements exposes uninitialized memory and is not checked.
func ForceSetSize[T any, A alloc.Allocator[T]](v *vec.Vector[T, A], n int) {
	*slot(v, FieldDataEnd) = elementAt[T](*slot(v, FieldDataStart), n)
	assertSame("data end after force-set", DataEnd(v), *slot(v, FieldDataEnd))
}

// ForceSetCapacity overwrites v's capacity end slot to data start plus n
// elements. Requires the data start slot to already hold its final value.
// Shrinking below the real block leaks its tail; growing beyond it corrupts
// memory on the next growth. Neither is checked.
func ForceSetCapacity[T any, A alloc.Allocator[T]](v *vec.Vector[T, A], n int) {
	*slot(v, FieldCapacityEnd) = elementAt[T](*slot(v, FieldDataStart), n)
	assertSame("capacity end after force-set", CapacityEnd(v), *slot(v, FieldCapacityEnd))
}

// Drain extracts v's block ownership as raw values and resets v to the
// canonical empty state (nil, 0, 0). v remains usable but owns nothing; the
// caller now owns the block [start, start+capacity) and must eventually
// either deallocate it through the returned allocator or hand it to Build.
func Drain[T any, A alloc.Allocator[T]](v *vec.Vector[T, A]) (start unsafe.Pointer, size, capacity int, a A) {
	start = v.Data()
	size = v.Len()
	capacity = v.Cap()
	a = v.Allocator()

	ForceSetDataStart(v, nil)
	ForceSetSize(v, 0)
	ForceSetCapacity(v, 0)
	return start, size, capacity, a
}

// Build constructs a Vector directly from previously drained values. No
// allocation is performed; the new Vector takes ownership of the block and
// reports exactly the given size and capacity. The values must originate
// from a single Drain (or equivalent) and must not be consumed twice.
func Build[T any, A alloc.Allocator[T]](start unsafe.Pointer, size, capacity int, a A) *vec.Vector[T, A] {
	v := vec.New[T, A](a)
	ForceSetDataStart(v, start)
	ForceSetSize(v, size)
	ForceSetCapacity(v, capacity)
	return v
}

// elementAt returns base advanced by n elements of T, keeping nil nil.
func elementAt[T any](base unsafe.Pointer, n int) unsafe.Pointer {
	if base == nil && n == 0 {
		return nil
	}
	return unsafe.Add(base, uintptr(n)*alloc.SizeOf[T]())
}
