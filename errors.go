package memdl

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidData occurs when an image buffer is nil or shorter than a magic.
	ErrInvalidData = errors.New("invalid data or size")
	// ErrUnrecognizedFormat occurs when no known magic matches the image.
	ErrUnrecognizedFormat = errors.New("not a valid executable format")
	// ErrInvalidHandle occurs when a nil Library is used.
	ErrInvalidHandle = errors.New("invalid handle")
	// ErrEmptySymbol occurs when resolving an empty symbol name.
	ErrEmptySymbol = errors.New("empty symbol name")
	// ErrMissingSymbol occurs when the native resolver can't find a symbol.
	ErrMissingSymbol = errors.New("missing symbol")
	// ErrClosed occurs when a released Library is used again.
	ErrClosed = errors.New("library already closed")
	// ErrAllMethodsFailed occurs when every loading strategy of a chain failed.
	ErrAllMethodsFailed = errors.New("all loading methods failed")
	// ErrUnsupported occurs when a loading mechanism is not present on the current platform.
	ErrUnsupported = errors.New("unsupported on this platform")
)

// Kind classifies where a failure was detected.
type Kind int

const (
	KindInput  Kind = iota + 1 // bad buffer, handle or name, detected locally
	KindFormat                 // unrecognized magic bytes
	KindNative                 // native loader, staging I/O or resolver failure
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindFormat:
		return "format"
	case KindNative:
		return "native"
	default:
		return "unknown"
	}
}

// Error is the failure returned by every operation of this package.
//
// Use errors.Is against the sentinels above, or errors.As to inspect Op and Kind.
type Error struct {
	Op   string // validate, open, open_file, lookup, close
	Kind Kind
	Path string // file or pseudo path involved, may be empty
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err, or zero when err was not produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func inputError(op string, err error) error {
	return &Error{Op: op, Kind: KindInput, Err: err}
}

// nativeError keeps the native diagnostic verbatim, or substitutes fallback when there is none.
func nativeError(op, path string, err error, fallback string) error {
	if err == nil || err.Error() == "" {
		err = errors.New(fallback)
	}
	return &Error{Op: op, Kind: KindNative, Path: path, Err: err}
}
