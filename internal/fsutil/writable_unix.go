//go:build unix

package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

func writable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

func clearReadOnly(path string, dir bool) error {
	fi, err := os.Lstat(path)
	if err != nil {
		return err
	}
	mode := fi.Mode().Perm() | unix.S_IWUSR
	if dir {
		mode |= unix.S_IRUSR | unix.S_IXUSR
	}
	return os.Chmod(path, mode)
}
