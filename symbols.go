package memdl

import (
	"unsafe"
)

// Sym is the address of an exported symbol.
type Sym uintptr

// Ptr views a data symbol as a pointer to T.
//
// The address comes from the native resolver and points into the mapped library, not into the Go
// heap. It is only valid while the owning Library is open.
func Ptr[T any](s Sym) *T {
	return *(**T)(unsafe.Pointer(&s))
}
