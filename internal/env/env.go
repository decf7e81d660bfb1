package env

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// MarkerDir is the version-control directory that identifies the project root.
const MarkerDir = ".git"

// ErrNoRoot is returned when no ancestor contains MarkerDir.
var ErrNoRoot = errors.New("project root not found")

// RootDir walks upward from start and returns the first directory that
// contains a MarkerDir directory. start may be a file or a directory.
func RootDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if fi, err := os.Stat(dir); err == nil && !fi.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		fi, err := os.Stat(filepath.Join(dir, MarkerDir))
		if err == nil && fi.IsDir() {
			return dir, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("search project root: %w", err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w above %s", ErrNoRoot, start)
		}
		dir = parent
	}
}

// SourceRoot locates the project root starting at this source file.
// When the recorded source path is gone (the binary was moved elsewhere),
// the search starts at the working directory instead.
func SourceRoot() (string, error) {
	if _, file, _, ok := runtime.Caller(0); ok {
		if _, err := os.Stat(file); err == nil {
			return RootDir(file)
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return RootDir(wd)
}

// Layout describes the vendor directories below a project root:
//
//	root/
//	  third_party/          # InstallDir, persistent
//	    tmp/                # TmpDir, removed after each run
//	    <name>/             # Dep(name), installed artifact tree
type Layout struct {
	Root string
}

const (
	installDirName = "third_party"
	tmpDirName     = "tmp"
)

func (l Layout) InstallDir() string {
	return filepath.Join(l.Root, installDirName)
}

func (l Layout) TmpDir() string {
	return filepath.Join(l.Root, installDirName, tmpDirName)
}

// Dep returns the install directory of the named dependency.
func (l Layout) Dep(name string) string {
	return filepath.Join(l.Root, installDirName, name)
}

// Ensure creates the install and scratch directories if they are missing.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.InstallDir(), l.TmpDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
