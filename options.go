package memdl

import (
	"os"

	"go.uber.org/zap"
)

const (
	// EnvTempDir overrides the scratch directory of staging files.
	EnvTempDir = "MEMDL_TMPDIR"
	// EnvDebug enables debug logging when set to 1 or true.
	EnvDebug = "MEMDL_DEBUG"
)

// Option configures a Loader.
type Option func(*Loader)

// WithNative replaces the native loading facility, mostly useful in tests.
func WithNative(n Native) Option {
	return func(l *Loader) {
		l.native = n
	}
}

// WithStrategies replaces the platform loading chain.
func WithStrategies(s ...Strategy) Option {
	return func(l *Loader) {
		l.strategies = append([]Strategy{}, s...)
	}
}

// WithTempDir sets the scratch directory staging files are created in.
// It has no effect together with WithStrategies.
func WithTempDir(dir string) Option {
	return func(l *Loader) {
		l.tempDir = dir
	}
}

// WithLogger sets the logger of the Loader, nil keeps the package Logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithDebug toggles debug logging of every attempt.
func WithDebug(debug bool) Option {
	return func(l *Loader) {
		l.debug = debug
	}
}

func envTempDir() string {
	if d := os.Getenv(EnvTempDir); d != "" {
		return d
	}
	return defaultTempDir()
}

func envDebug() bool {
	switch os.Getenv(EnvDebug) {
	case "1", "true", "TRUE", "True":
		return true
	}
	return false
}
