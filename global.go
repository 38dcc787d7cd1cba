package memdl

import (
	"sync"
)

var (
	global     *Loader
	globalOnce sync.Once
)

// Default is the process wide Loader behind Open and OpenFile.
//
// Its LastError is shared by every caller of the package functions, create a Loader with New
// when the diagnostic text must not be overwritten by other goroutines.
func Default() *Loader {
	globalOnce.Do(func() {
		global = New()
	})
	return global
}

// Open loads a library from data with the Default Loader.
func Open(data []byte, flags Flag) (*Library, error) {
	return Default().Open(data, flags)
}

// OpenFile loads a library from a path with the Default Loader.
func OpenFile(path string, flags Flag) (*Library, error) {
	return Default().OpenFile(path, flags)
}
