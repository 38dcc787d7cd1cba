//go:build linux

package memdl

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

func memfdCreate(name string) (int, error) {
	return unix.MemfdCreate(name, unix.MFD_CLOEXEC)
}

// writeFD writes all of data, a short write is an error.
func writeFD(fd int, data []byte) error {
	written := 0
	for written < len(data) {
		n, err := unix.Write(fd, data[written:])
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return err
		}
		if n <= 0 {
			return fmt.Errorf("short write (%d/%d)", written, len(data))
		}
		written += n
	}
	return nil
}

func rewindFD(fd int) error {
	_, err := unix.Seek(fd, 0, io.SeekStart)
	return err
}

func closeFD(fd int) error {
	return unix.Close(fd)
}

func fdPath(fd int) string {
	return fmt.Sprintf("/proc/self/fd/%d", fd)
}
