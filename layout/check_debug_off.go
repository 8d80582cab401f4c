//go:build !leakycheck

package layout

import "unsafe"

// No-op slot cross-check for normal builds. Build with -tags leakycheck to
// verify every raw slot access against the public API.
func assertSame(what string, got, want unsafe.Pointer) {}
