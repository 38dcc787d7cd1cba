//go:build !android

package memdl

// systemSDK is only meaningful on Android.
func systemSDK() int { return 0 }
