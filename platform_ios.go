//go:build ios

package memdl

import "os"

const platform = PlatformIOS

func defaultNative() Native { return dlNative{} }

// os.TempDir resolves to the sandbox tmp directory of the app.
func defaultTempDir() string { return os.TempDir() }

func defaultStrategies(dir string) []Strategy {
	return []Strategy{TempFile{Dir: dir, Ext: ".dylib"}}
}
