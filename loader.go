package memdl

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"go.uber.org/zap"
)

// NoError is what LastError reports before any failure was recorded.
const NoError = "no error"

type (
	// Loader turns image buffers into Libraries through an ordered chain of strategies.
	//
	// A Loader is safe for concurrent use. It keeps the diagnostic of its latest failure,
	// give every logical caller its own Loader when that text matters.
	Loader struct {
		native     Native
		strategies []Strategy
		tempDir    string
		log        *zap.Logger
		debug      bool

		mu      sync.Mutex
		lastErr string
		stats   Stats
	}
	// Stats counts what a Loader did, including failures it chose not to report.
	Stats struct {
		Loads      int            // libraries opened
		Failures   int            // failed operations of any kind
		Fallbacks  int            // strategies that failed before a later one was tried
		Leaked     int            // staging files that could not be removed
		ByStrategy map[string]int // successful loads by strategy name, "file" for OpenFile
	}
)

// New creates a Loader for the current platform.
func New(opts ...Option) *Loader {
	l := &Loader{
		native:  defaultNative(),
		tempDir: envTempDir(),
		log:     Logger(),
		debug:   envDebug(),
	}
	l.stats.ByStrategy = make(map[string]int)
	for _, o := range opts {
		o(l)
	}
	if l.strategies == nil {
		l.strategies = defaultStrategies(l.tempDir)
	}
	return l
}

// Strategies names the loading chain in the order it is attempted.
func (l *Loader) Strategies() []string {
	n := make([]string, len(l.strategies))
	for i, s := range l.strategies {
		n[i] = s.Name()
	}
	return n
}

// Open loads a library from data. data is only read during the call.
//
// Invalid images fail before any strategy runs.
func (l *Loader) Open(data []byte, flags Flag) (lib *Library, err error) {
	if err = Validate(data); err != nil {
		err = &Error{Op: "open", Kind: KindOf(err), Err: errors.Unwrap(err)}
		l.fail(err)
		return
	}
	digest := Digest(data)
	env := &Env{Native: l.native, Logger: l.log, Leaked: l.leaked}
	var causes []error
	for i, s := range l.strategies {
		if l.debug {
			l.log.Debug("try strategy", zap.String("strategy", s.Name()), zap.String("digest", digest), zap.Stringer("flags", flags))
		}
		h, path, serr := s.Load(env, data, flags)
		if serr == nil {
			lib = l.track(s.Name(), h, path, digest, flags)
			return
		}
		causes = append(causes, fmt.Errorf("%s: %w", s.Name(), serr))
		if i < len(l.strategies)-1 {
			l.mu.Lock()
			l.stats.Fallbacks++
			l.mu.Unlock()
			l.log.Warn("strategy failed, falling back", zap.String("strategy", s.Name()), zap.Error(serr))
		}
	}
	switch len(causes) {
	case 0:
		err = &Error{Op: "open", Kind: KindNative, Err: fmt.Errorf("no loading strategy: %w", ErrUnsupported)}
	case 1:
		err = nativeError("open", "", errors.Unwrap(causes[0]), "failed to load library")
	default:
		err = &Error{Op: "open", Kind: KindNative, Err: errors.Join(append([]error{ErrAllMethodsFailed}, causes...)...)}
	}
	l.fail(err)
	return
}

// OpenFile loads a library that is already on disk, without staging.
func (l *Loader) OpenFile(path string, flags Flag) (lib *Library, err error) {
	if path == "" {
		err = inputError("open_file", ErrInvalidData)
		l.fail(err)
		return
	}
	h, nerr := l.native.Open(path, flags)
	if nerr == nil && h == 0 {
		nerr = errors.New("native loader returned a nil handle")
	}
	if nerr != nil {
		err = nativeError("open_file", path, nerr, "failed to load library")
		l.fail(err)
		return
	}
	return l.track("file", h, path, "", flags), nil
}

// LastError is the diagnostic of the latest failure seen by this Loader, or NoError.
//
// A success does not reset it, check returned errors for control flow.
func (l *Loader) LastError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastErr == "" {
		return NoError
	}
	return l.lastErr
}

// Stats returns a snapshot of the counters.
func (l *Loader) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.stats
	s.ByStrategy = maps.Clone(l.stats.ByStrategy)
	return s
}

func (l *Loader) track(strategy string, h uintptr, path, digest string, flags Flag) *Library {
	l.mu.Lock()
	l.stats.Loads++
	l.stats.ByStrategy[strategy]++
	l.mu.Unlock()
	if l.debug {
		l.log.Debug("library loaded", zap.String("strategy", strategy), zap.String("path", path), zap.Uintptr("handle", h))
	}
	return &Library{
		loader:   l,
		handle:   h,
		path:     path,
		strategy: strategy,
		digest:   digest,
		flags:    flags,
	}
}

func (l *Loader) fail(err error) {
	l.mu.Lock()
	l.lastErr = err.Error()
	l.stats.Failures++
	l.mu.Unlock()
	if l.debug {
		l.log.Debug("operation failed", zap.Error(err))
	}
}

func (l *Loader) failed(err error) error {
	l.fail(err)
	return err
}

func (l *Loader) leaked(string, error) {
	l.mu.Lock()
	l.stats.Leaked++
	l.mu.Unlock()
}
