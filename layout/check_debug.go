//go:build leakycheck

package layout

import (
	"fmt"
	"unsafe"
)

// In "leakycheck" builds every slot access is cross-checked against the
// value derived from the Vector's public API. A mismatch means the
// structural assumption broke at runtime, which is unrecoverable.

func assertSame(what string, got, want unsafe.Pointer) {
	if got != want {
		panic(fmt.Sprintf("layout: %s: raw slot holds %p, public API says %p", what, got, want))
	}
}
