//go:build linux || darwin

package memdl

import (
	"github.com/ebitengine/purego"
)

// dlNative calls dlopen(3) and friends through purego, no cgo needed.
type dlNative struct{}

func dlFlags(f Flag) int {
	mode := purego.RTLD_LAZY
	if f.Eager() {
		mode = purego.RTLD_NOW
	}
	if f.Private() {
		mode |= purego.RTLD_LOCAL
	} else {
		mode |= purego.RTLD_GLOBAL
	}
	return mode
}

func (dlNative) Open(path string, flags Flag) (uintptr, error) {
	return purego.Dlopen(path, dlFlags(flags))
}

func (dlNative) Sym(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func (dlNative) Close(handle uintptr) error {
	return purego.Dlclose(handle)
}
