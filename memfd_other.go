//go:build !linux

package memdl

import "fmt"

func memfdCreate(string) (int, error) { return -1, ErrUnsupported }
func writeFD(int, []byte) error       { return ErrUnsupported }
func rewindFD(int) error              { return ErrUnsupported }
func closeFD(int) error               { return ErrUnsupported }
func fdPath(fd int) string            { return fmt.Sprintf("/proc/self/fd/%d", fd) }
