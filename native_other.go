//go:build !linux && !darwin && !windows

package memdl

type unsupportedNative struct{}

func (unsupportedNative) Open(string, Flag) (uintptr, error)   { return 0, ErrUnsupported }
func (unsupportedNative) Sym(uintptr, string) (uintptr, error) { return 0, ErrUnsupported }
func (unsupportedNative) Close(uintptr) error                  { return ErrUnsupported }
