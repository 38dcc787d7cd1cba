//go:build !windows

package memdl

func scheduleRemove(string) error { return ErrUnsupported }
