package memdl

import (
	"testing"

	"github.com/ZenLiuCN/fn"
)

// missingSymbols reports which of names the library does not export.
func missingSymbols(lib *Library, names ...string) (missing []string) {
	for _, n := range names {
		if _, err := lib.Lookup(n); err != nil {
			missing = append(missing, n)
		}
	}
	return
}

func TestDependencies(t *testing.T) {
	_, _, lib := openFake(t)
	defer func() { fn.Panic(lib.Close()) }()
	m := missingSymbols(lib, symEntry, "native_test", symSum, "get_message")
	if len(m) != 2 || m[0] != "native_test" || m[1] != "get_message" {
		t.Fatalf("missing = %v", m)
	}
	t.Log(m)
}
