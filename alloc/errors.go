package alloc

import "errors"

var (
	// ErrBadCount indicates a non-positive element count passed to Allocate.
	ErrBadCount = errors.New("alloc: element count must be positive")

	// ErrOverflow indicates the requested element count overflows the
	// addressable byte size on this platform.
	ErrOverflow = errors.New("alloc: element count overflows block size")

	// ErrExhausted indicates the underlying memory source could not satisfy
	// the request.
	ErrExhausted = errors.New("alloc: out of memory")
)
