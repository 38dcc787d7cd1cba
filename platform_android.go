//go:build android

package memdl

import "os"

const platform = PlatformAndroid

// androidScratchDir is writable by shell and debuggable apps when TMPDIR is unset.
const androidScratchDir = "/data/local/tmp"

func defaultNative() Native { return androidNative{} }

func defaultTempDir() string {
	if d := os.Getenv("TMPDIR"); d != "" {
		return d
	}
	return androidScratchDir
}

func defaultStrategies(dir string) []Strategy {
	return []Strategy{
		AndroidExt{MinSDK: AndroidMemFDSDK},
		TempFile{Dir: dir, Ext: ".so"},
	}
}
