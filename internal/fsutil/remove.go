// Copyright 2024 The llar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsutil removes scratch trees that may hold write-protected files,
// such as the object store of a fresh git clone.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"
)

// RemoveAll removes path and everything below it. If the first attempt fails
// with a permission error, write protection is cleared on every entry that is
// not writable and the removal is retried once. A missing path is not an error.
func RemoveAll(path string) error {
	err := os.RemoveAll(path)
	if err == nil || !errors.Is(err, fs.ErrPermission) {
		return err
	}
	log.Debugf("remove %s: %v, clearing read-only entries", path, err)
	if err := MakeWritable(path); err != nil {
		return err
	}
	return os.RemoveAll(path)
}

// MakeWritable clears write protection on path and all entries below it.
// Directories are fixed before they are read so protected trees can be walked.
func MakeWritable(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 || writable(p) {
			return nil
		}
		return clearReadOnly(p, d.IsDir())
	})
}
