package memdl

// Platform identifies the operating system family this package was built for.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformLinux
	PlatformAndroid
	PlatformMacOS
	PlatformIOS
	PlatformWindows
)

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformAndroid:
		return "android"
	case PlatformMacOS:
		return "macos"
	case PlatformIOS:
		return "ios"
	case PlatformWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// CurrentPlatform reports the platform selected at build time.
func CurrentPlatform() Platform {
	return platform
}
