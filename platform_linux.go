//go:build linux && !android

package memdl

import "os"

const platform = PlatformLinux

func defaultNative() Native { return dlNative{} }

func defaultTempDir() string { return os.TempDir() }

func defaultStrategies(dir string) []Strategy {
	return []Strategy{
		MemFD{},
		TempFile{Dir: dir, Ext: ".so"},
	}
}
