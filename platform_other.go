//go:build !linux && !darwin && !windows

package memdl

import "os"

const platform = PlatformUnknown

func defaultNative() Native { return unsupportedNative{} }

func defaultTempDir() string { return os.TempDir() }

func defaultStrategies(string) []Strategy { return nil }
