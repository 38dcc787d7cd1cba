package memdl

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
		is       error
		kind     Kind
	}{
		{
			name:     "input",
			err:      inputError("lookup", ErrEmptySymbol),
			contains: []string{"lookup", "empty symbol name"},
			is:       ErrEmptySymbol,
			kind:     KindInput,
		},
		{
			name:     "native with path",
			err:      nativeError("open_file", "/tmp/a.so", errors.New("/tmp/a.so: invalid ELF header"), "failed"),
			contains: []string{"open_file /tmp/a.so", "invalid ELF header"},
			kind:     KindNative,
		},
		{
			name:     "native without diagnostic",
			err:      nativeError("close", "", nil, "failed to unload library"),
			contains: []string{"close: failed to unload library"},
			kind:     KindNative,
		},
		{
			name:     "wrapped",
			err:      fmt.Errorf("load plugin: %w", &Error{Op: "validate", Kind: KindFormat, Err: ErrUnrecognizedFormat}),
			contains: []string{"load plugin", "not a valid executable format"},
			is:       ErrUnrecognizedFormat,
			kind:     KindFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, c := range tt.contains {
				if !strings.Contains(msg, c) {
					t.Errorf("Error() = %q, missing %q", msg, c)
				}
			}
			if tt.is != nil && !errors.Is(tt.err, tt.is) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.is)
			}
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestKindOfForeign(t *testing.T) {
	if k := KindOf(errors.New("other")); k != 0 || k.String() != "unknown" {
		t.Fatalf("KindOf(foreign) = %v", k)
	}
	if KindNative.String() != "native" {
		t.Fatal(KindNative.String())
	}
}
