//go:build windows

package memdl

import "os"

const platform = PlatformWindows

func defaultNative() Native { return winNative{} }

func defaultTempDir() string { return os.TempDir() }

func defaultStrategies(dir string) []Strategy {
	return []Strategy{TempFile{Dir: dir, Ext: ".dll"}}
}
