package memdl

import (
	"testing"
	"unsafe"
)

func TestPtr(t *testing.T) {
	v := new(int64)
	*v = 42
	p := Ptr[int64](Sym(uintptr(unsafe.Pointer(v))))
	if p != v || *p != 42 {
		t.Fatalf("Ptr() = %p, want %p", p, v)
	}
	*p = 7
	if *v != 7 {
		t.Fatalf("write through Ptr lost, %d", *v)
	}
	if Ptr[byte](0) != nil {
		t.Fatal("Ptr(0) != nil")
	}
}
