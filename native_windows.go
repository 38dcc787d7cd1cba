//go:build windows

package memdl

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// winNative ignores Flag, LoadLibrary has no resolution or visibility switches.
type winNative struct{}

func (winNative) Open(path string, _ Flag) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, fmt.Errorf("LoadLibrary failed: %w", err)
	}
	return uintptr(h), nil
}

func (winNative) Sym(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func (winNative) Close(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}
