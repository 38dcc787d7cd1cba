package memdl

import "strings"

// Flag controls symbol resolution timing and visibility of a loaded library.
//
// Combine exactly one of Now or Lazy with one of Local or Global.
// Setting both bits of one axis is passed through to the native loader as is.
type Flag int

const (
	Now    Flag = 0x1 // resolve all symbols at load time
	Lazy   Flag = 0x2 // resolve symbols on first use
	Local  Flag = 0x4 // hide symbols from libraries loaded later
	Global Flag = 0x8 // expose symbols to libraries loaded later
)

// Eager reports whether symbols are resolved at load time.
func (f Flag) Eager() bool { return f&Now != 0 }

// Private reports whether symbols stay hidden from later libraries.
func (f Flag) Private() bool { return f&Local != 0 }

func (f Flag) String() string {
	var p []string
	for _, x := range []struct {
		f Flag
		n string
	}{{Now, "Now"}, {Lazy, "Lazy"}, {Local, "Local"}, {Global, "Global"}} {
		if f&x.f != 0 {
			p = append(p, x.n)
		}
	}
	if len(p) == 0 {
		return "0"
	}
	return strings.Join(p, "|")
}
