package memdl

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Library is a loaded module, created by [Loader.Open] or [Loader.OpenFile].
//
// Use Steps:
//
//  1. Open image bytes with a Loader.
//  2. [Library.Lookup] exported symbols, as many times as needed.
//  3. Call [Library.Close] to release the module.
//
// Note:
//
//  1. Close releases the native handle exactly once, later calls return ErrClosed.
//  2. Symbols fetched before Close must not be used after it.
//  3. Library can be shared between goroutines.
type Library struct {
	loader   *Loader
	path     string
	strategy string
	digest   string
	flags    Flag

	mu     sync.RWMutex
	handle uintptr
	closed bool
}

// Path is the file or pseudo path the native loader was given.
// Staging files and descriptors behind it are already gone.
func (b *Library) Path() string { return b.path }

// Strategy names the mechanism that loaded this library.
func (b *Library) Strategy() string { return b.strategy }

// Digest of the image bytes, empty for libraries opened from a path.
func (b *Library) Digest() string { return b.digest }

func (b *Library) Flags() Flag { return b.flags }

// Closed reports whether Close was called.
func (b *Library) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// Lookup resolves an exported symbol. A missing symbol is an ordinary error,
// the Library stays usable.
func (b *Library) Lookup(name string) (Sym, error) {
	if b == nil || b.loader == nil {
		return 0, inputError("lookup", ErrInvalidHandle)
	}
	if name == "" {
		return 0, b.loader.failed(inputError("lookup", ErrEmptySymbol))
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return 0, b.loader.failed(inputError("lookup", ErrClosed))
	}
	p, err := b.loader.native.Sym(b.handle, name)
	if err == nil && p == 0 {
		err = errors.New("symbol address is nil")
	}
	if err != nil {
		return 0, b.loader.failed(&Error{Op: "lookup", Kind: KindNative, Path: name, Err: errors.Join(ErrMissingSymbol, err)})
	}
	if b.loader.debug {
		b.loader.log.Debug("found symbol", zap.String("name", name), zap.Uintptr("addr", p))
	}
	return Sym(p), nil
}

// MustLookup is Lookup that panics with the error.
func (b *Library) MustLookup(name string) Sym {
	p, err := b.Lookup(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Close unloads the library. Only the first call reaches the native loader.
// A Library not obtained from a Loader is an invalid handle.
func (b *Library) Close() error {
	if b == nil || b.loader == nil {
		return inputError("close", ErrInvalidHandle)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return b.loader.failed(inputError("close", ErrClosed))
	}
	b.closed = true
	h := b.handle
	b.handle = 0
	if err := b.loader.native.Close(h); err != nil {
		return b.loader.failed(nativeError("close", b.path, err, "failed to unload library"))
	}
	if b.loader.debug {
		b.loader.log.Debug("library closed", zap.String("path", b.path), zap.Uintptr("handle", h))
	}
	return nil
}
