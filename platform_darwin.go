//go:build darwin && !ios

package memdl

import "os"

const platform = PlatformMacOS

func defaultNative() Native { return dlNative{} }

func defaultTempDir() string { return os.TempDir() }

// dyld has no anonymous memory loading, staging to disk is the only way.
func defaultStrategies(dir string) []Strategy {
	return []Strategy{TempFile{Dir: dir, Ext: ".dylib"}}
}
