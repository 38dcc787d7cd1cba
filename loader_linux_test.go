//go:build linux && !android

package memdl

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZenLiuCN/fn"
)

// systemLibm returns the bytes of the C math library, a copy of it loads
// next to the one the process may already have.
func systemLibm(t *testing.T) []byte {
	t.Helper()
	var candidates []string
	for _, pattern := range []string{"/lib/*/libm.so.6", "/usr/lib/*/libm.so.6", "/lib64/libm.so.6", "/usr/lib64/libm.so.6", "/usr/lib/libm.so.6"} {
		m, _ := filepath.Glob(pattern)
		candidates = append(candidates, m...)
	}
	for _, c := range candidates {
		data, err := os.ReadFile(c)
		if err == nil && Classify(data) == FormatELF {
			return data
		}
	}
	t.Skip("no libm.so.6 found")
	return nil
}

func TestRoundTrip(t *testing.T) {
	data := systemLibm(t)
	dir := t.TempDir()
	l := New(WithTempDir(dir))
	lib := fn.Panic1(l.Open(data, Now|Local))
	t.Logf("loaded by %s at %s, arch %s", lib.Strategy(), lib.Path(), DetectArch(data))
	var cos func(float64) float64
	fn.Panic(Bind(lib, "cos", &cos))
	if got, want := cos(0.5), math.Cos(0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("cos(0.5) = %v, want %v", got, want)
	}
	if _, err := lib.Lookup("no_such_export"); !errors.Is(err, ErrMissingSymbol) {
		t.Errorf("Lookup(missing) = %v", err)
	}
	Use[func(float64) float64](lib, "sin")(func(sin func(float64) float64, err error) {
		if err != nil {
			t.Errorf("Use(sin) = %v", err)
			return
		}
		if got, want := sin(1), math.Sin(1); math.Abs(got-want) > 1e-12 {
			t.Errorf("sin(1) = %v, want %v", got, want)
		}
	})
	fn.Panic(lib.Close())
	if err := lib.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() = %v", err)
	}
	emptyDir(t, dir)
}

func TestRoundTripPreferMemFD(t *testing.T) {
	data := systemLibm(t)
	l := New()
	lib, err := l.Open(data, Lazy|Local)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { fn.Panic(lib.Close()) }()
	if lib.Strategy() != "memfd" {
		t.Skipf("memfd unavailable, loaded by %s", lib.Strategy())
	}
	if !strings.HasPrefix(lib.Path(), "/proc/self/fd/") {
		t.Fatalf("path = %s", lib.Path())
	}
	fn.Panic1(lib.Lookup("floor"))
}

func TestFallbackWhenMemFDDenied(t *testing.T) {
	data := systemLibm(t)
	dir := t.TempDir()
	l := New(WithStrategies(MemFD{Create: denied}, TempFile{Dir: dir, Ext: ".so"}))
	lib := fn.Panic1(l.Open(data, Now|Local))
	if lib.Strategy() != "tempfile" {
		t.Fatalf("strategy = %s", lib.Strategy())
	}
	emptyDir(t, dir)
	var fabs func(float64) float64
	fn.Panic(Bind(lib, "fabs", &fabs))
	if fabs(-2.5) != 2.5 {
		t.Errorf("fabs(-2.5) = %v", fabs(-2.5))
	}
	fn.Panic(lib.Close())
	if s := l.Stats(); s.Fallbacks != 1 || s.ByStrategy["tempfile"] != 1 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestNativeFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	l := New(WithTempDir(dir))
	// valid magic, nothing behind it
	lib, err := l.Open(elfImage(2), Now|Local)
	if lib != nil || !errors.Is(err, ErrAllMethodsFailed) {
		t.Fatalf("Open() = %v, %v", lib, err)
	}
	if KindOf(err) != KindNative || l.LastError() != err.Error() {
		t.Fatalf("Open() error = %v, LastError() = %q", err, l.LastError())
	}
	emptyDir(t, dir)
}

func TestMemFDPath(t *testing.T) {
	native := newFakeNative()
	l := New(WithNative(native), WithStrategies(MemFD{}))
	lib, err := l.Open(image, Now|Local)
	if err != nil {
		t.Skipf("memfd_create unavailable: %v", err)
	}
	defer func() { fn.Panic(lib.Close()) }()
	if !strings.HasPrefix(lib.Path(), "/proc/self/fd/") {
		t.Fatalf("path = %s", lib.Path())
	}
	// the descriptor is closed right after the load
	if target, err := os.Readlink(lib.Path()); err == nil && strings.Contains(target, MemFDName) {
		t.Fatalf("descriptor still open: %s", target)
	}
}

func TestOpenFileSystemLibrary(t *testing.T) {
	lib, err := OpenFile("libm.so.6", Lazy|Global)
	if err != nil {
		t.Skipf("OpenFile(libm.so.6) = %v", err)
	}
	fn.Panic1(lib.Lookup("sqrt"))
	fn.Panic(lib.Close())
	if lib.Strategy() != "file" {
		t.Fatalf("strategy = %s", lib.Strategy())
	}
}
