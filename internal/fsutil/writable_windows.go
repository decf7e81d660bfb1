//go:build windows

package fsutil

import (
	"golang.org/x/sys/windows"
)

func writable(path string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return true
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return true
	}
	return attrs&windows.FILE_ATTRIBUTE_READONLY == 0
}

func clearReadOnly(path string, _ bool) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	return windows.SetFileAttributes(p, attrs&^windows.FILE_ATTRIBUTE_READONLY)
}
