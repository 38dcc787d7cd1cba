package memdl

// Native is the dynamic loading facility of the operating system.
//
// Handles are opaque to this package, zero is never a valid handle.
type Native interface {
	Open(path string, flags Flag) (uintptr, error)
	Sym(handle uintptr, name string) (uintptr, error)
	Close(handle uintptr) error
}

// FDOpener is a Native able to load a library straight from an open descriptor.
type FDOpener interface {
	OpenFD(fd int, path string, flags Flag) (uintptr, error)
}
