package memdl

import (
	"errors"
	"os"
	"sync"
)

// fakeNative loads nothing. It checks that a path handed to Open exists and
// serves symbols from a fixed table.
type fakeNative struct {
	mu      sync.Mutex
	fail    func(path string) error
	symbols map[string]uintptr
	opened  []string
	closed  []uintptr
	next    uintptr
}

func newFakeNative() *fakeNative {
	return &fakeNative{symbols: map[string]uintptr{"entry": 0x1000, "calculate_sum": 0x2000}}
}

func (f *fakeNative) Open(path string, _ Flag) (uintptr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, path)
	if f.fail != nil {
		if err := f.fail(path); err != nil {
			return 0, err
		}
	}
	if _, err := os.Stat(path); err != nil {
		return 0, err
	}
	f.next++
	return f.next, nil
}

func (f *fakeNative) Sym(_ uintptr, name string) (uintptr, error) {
	if p, ok := f.symbols[name]; ok {
		return p, nil
	}
	return 0, errors.New("undefined symbol: " + name)
}

func (f *fakeNative) Close(h uintptr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, h)
	return nil
}

func (f *fakeNative) Opened() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.opened...)
}

// countStrategy records whether it ran.
type countStrategy struct {
	name  string
	err   error
	calls int
}

func (c *countStrategy) Name() string { return c.name }

func (c *countStrategy) Load(*Env, []byte, Flag) (uintptr, string, error) {
	c.calls++
	if c.err != nil {
		return 0, "", c.err
	}
	return 42, "/" + c.name, nil
}
