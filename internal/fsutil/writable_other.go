//go:build !unix && !windows

package fsutil

import "os"

func writable(path string) bool {
	fi, err := os.Lstat(path)
	if err != nil {
		return true
	}
	return fi.Mode().Perm()&0o200 != 0
}

func clearReadOnly(path string, dir bool) error {
	fi, err := os.Lstat(path)
	if err != nil {
		return err
	}
	mode := fi.Mode().Perm() | 0o200
	if dir {
		mode |= 0o500
	}
	return os.Chmod(path, mode)
}
