//go:build linux || darwin || windows

package memdl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Call invokes a function symbol with integer or pointer arguments
// and returns the integer result register.
func (s Sym) Call(args ...uintptr) uintptr {
	r, _, _ := purego.SyscallN(uintptr(s), args...)
	return r
}

// Bind resolves name and makes fptr, a pointer to a Go function variable, call it.
func Bind(lib *Library, name string, fptr any) (err error) {
	var s Sym
	if s, err = lib.Lookup(name); err != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bind %s: %v", name, r)
		}
	}()
	purego.RegisterFunc(fptr, uintptr(s))
	return
}

// Use create a function to bind and use symbol on the fly
func Use[T any](lib *Library, name string) func(func(t T, err error)) {
	return func(f func(t T, err error)) {
		var x T
		err := Bind(lib, name, &x)
		f(x, err)
	}
}
