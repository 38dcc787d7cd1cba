package pool

import (
	"errors"
	"slices"
	"sync"

	"github.com/ZenLiuCN/fn"
	. "github.com/ZenLiuCN/memdl"
	"github.com/sourcegraph/conc/pool"
)

// Pool keeps named libraries loaded through one Loader.
type Pool struct {
	*Loader
	Modules map[string]*Library
	Loaded  []string // names in load order, released in reverse by Close
	sync.RWMutex
}

var (
	ErrAlreadyLoad   = errors.New("module already loaded")
	ErrNotLoad       = errors.New("module not loaded")
	ErrMissingModule = errors.New("missing module")
	ErrEmptyName     = errors.New("empty module name")
)

// DefaultConcurrency bounds LoadMany.
const DefaultConcurrency = 4

// Load a library from image bytes under name. The image is loaded outside the pool lock,
// so loads of different names run in parallel.
func (p *Pool) Load(name string, data []byte, flags Flag) error {
	return p.load(name, func() (*Library, error) { return p.Loader.Open(data, flags) })
}

// LoadFile load a library already on disk under name
func (p *Pool) LoadFile(name, path string, flags Flag) error {
	return p.load(name, func() (*Library, error) { return p.Loader.OpenFile(path, flags) })
}

func (p *Pool) load(name string, open func() (*Library, error)) (err error) {
	if name == "" {
		return ErrEmptyName
	}
	p.RLock()
	_, ok := p.Modules[name]
	p.RUnlock()
	if ok {
		return ErrAlreadyLoad
	}
	var lib *Library
	if lib, err = open(); err != nil {
		return
	}
	p.Lock()
	defer p.Unlock()
	if _, ok = p.Modules[name]; ok {
		_ = lib.Close()
		return ErrAlreadyLoad
	}
	p.add(name, lib)
	return
}

// LoadMany loads images concurrently, each under its key. Images that loaded stay in the
// pool when others fail, the returned error joins every failure.
func (p *Pool) LoadMany(images map[string][]byte, flags Flag) error {
	wp := pool.New().WithMaxGoroutines(DefaultConcurrency).WithErrors()
	for name, data := range images {
		wp.Go(func() error {
			return p.Load(name, data, flags)
		})
	}
	return wp.Wait()
}

// Reload replaces the library under name with new image bytes.
// The old library is closed only after the new one loaded.
func (p *Pool) Reload(name string, data []byte, flags Flag) (err error) {
	p.Lock()
	defer p.Unlock()
	old, ok := p.Modules[name]
	if !ok {
		return ErrNotLoad
	}
	var lib *Library
	if lib, err = p.Loader.Open(data, flags); err != nil {
		return
	}
	p.remove(name)
	p.add(name, lib)
	return old.Close()
}

// Unload closes and forgets the library under name.
func (p *Pool) Unload(name string) error {
	p.Lock()
	defer p.Unlock()
	lib, ok := p.Modules[name]
	if !ok {
		return ErrNotLoad
	}
	p.remove(name)
	return lib.Close()
}

// Require fetch symbol from module
func (p *Pool) Require(name, symbol string) Sym {
	p.RLock()
	defer p.RUnlock()
	if m, ok := p.Modules[name]; ok {
		return m.MustLookup(symbol)
	}
	panic(ErrMissingModule)
}

// Lookup is Require without panics.
func (p *Pool) Lookup(name, symbol string) (Sym, error) {
	p.RLock()
	defer p.RUnlock()
	if m, ok := p.Modules[name]; ok {
		return m.Lookup(symbol)
	}
	return 0, ErrMissingModule
}

// Names of loaded modules, unordered.
func (p *Pool) Names() []string {
	p.RLock()
	defer p.RUnlock()
	return fn.MapKeys(p.Modules)
}

// Close releases all libraries, the latest loaded first.
func (p *Pool) Close() error {
	p.Lock()
	defer p.Unlock()
	var errs []error
	for _, name := range slices.Backward(p.Loaded) {
		if err := p.Modules[name].Close(); err != nil {
			errs = append(errs, err)
		}
		delete(p.Modules, name)
	}
	p.Loaded = p.Loaded[:0]
	return errors.Join(errs...)
}

func (p *Pool) add(name string, lib *Library) {
	p.Modules[name] = lib
	p.Loaded = append(p.Loaded, name)
}

func (p *Pool) remove(name string) {
	delete(p.Modules, name)
	if i := slices.Index(p.Loaded, name); i >= 0 {
		p.Loaded = slices.Delete(p.Loaded, i, i+1)
	}
}

// NewPool create new pool over a Loader, nil uses a new Loader for the current platform.
func NewPool(l *Loader) (p *Pool) {
	if l == nil {
		l = New()
	}
	p = new(Pool)
	p.Loader = l
	p.Modules = make(map[string]*Library)
	return
}
