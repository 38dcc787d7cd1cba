//go:build !linux && !darwin && !windows

package memdl

import (
	"fmt"
)

// Call panics, calling into native code is not supported on this platform.
func (s Sym) Call(...uintptr) uintptr {
	panic(fmt.Errorf("call %#x: %w", uintptr(s), ErrUnsupported))
}

// Bind fails with ErrUnsupported once name resolved.
func Bind(lib *Library, name string, _ any) error {
	if _, err := lib.Lookup(name); err != nil {
		return err
	}
	return fmt.Errorf("bind %s: %w", name, ErrUnsupported)
}

// Use create a function to bind and use symbol on the fly
func Use[T any](lib *Library, name string) func(func(t T, err error)) {
	return func(f func(t T, err error)) {
		var x T
		f(x, Bind(lib, name, &x))
	}
}
