package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qiniu/x/log"

	"github.com/rtchallenge/installdeps/internal/deps"
	"github.com/rtchallenge/installdeps/internal/env"
	"github.com/rtchallenge/installdeps/internal/vcs"
)

// setup points the command at a fresh project root whose git executable
// does not exist, so any clone attempt fails.
func setup(t *testing.T, args ...string) env.Layout {
	t.Helper()
	layout := env.Layout{Root: t.TempDir()}
	missingGit := filepath.Join(t.TempDir(), "no-such-git")

	savedFind, savedNew := findRoot, newInstaller
	t.Cleanup(func() {
		findRoot, newInstaller = savedFind, savedNew
		verbose = false
		log.SetOutputLevel(log.Linfo)
		rootCmd.SetArgs(nil)
	})

	findRoot = func() (string, error) { return layout.Root, nil }
	newInstaller = func(l env.Layout) *deps.Installer {
		in := deps.New(l)
		in.VCS = vcs.NewGitVCS(vcs.WithGitPath(missingGit))
		return in
	}
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	return layout
}

func TestExecuteCloneFailure(t *testing.T) {
	layout := setup(t)

	if code := Execute(); code != -1 {
		t.Fatalf("Execute() = %d, want -1", code)
	}
	if _, err := os.Stat(layout.InstallDir()); err != nil {
		t.Errorf("install dir missing after failed run: %v", err)
	}
	if _, err := os.Stat(layout.Dep("catch2")); !os.IsNotExist(err) {
		t.Errorf("catch2 should not be installed: %v", err)
	}
}

func TestExecuteAlreadyInstalled(t *testing.T) {
	layout := setup(t, "--verbose")
	if err := os.MkdirAll(layout.Dep("catch2"), 0o755); err != nil {
		t.Fatal(err)
	}

	if code := Execute(); code != 0 {
		t.Fatalf("Execute() = %d, want 0", code)
	}
	if !verbose {
		t.Error("--verbose was not parsed")
	}
	if _, err := os.Stat(layout.TmpDir()); !os.IsNotExist(err) {
		t.Errorf("scratch dir should be removed: %v", err)
	}
}

func TestExecuteRootNotFound(t *testing.T) {
	setup(t)
	findRoot = func() (string, error) { return "", env.ErrNoRoot }

	if code := Execute(); code != -1 {
		t.Fatalf("Execute() = %d, want -1", code)
	}
}

func TestRunInstallWrapsRootError(t *testing.T) {
	setup(t)
	findRoot = func() (string, error) { return "", env.ErrNoRoot }

	err := runInstall(rootCmd, nil)
	if !errors.Is(err, env.ErrNoRoot) {
		t.Fatalf("runInstall() error = %v, want ErrNoRoot", err)
	}
}

func TestExecuteRejectsArguments(t *testing.T) {
	layout := setup(t, "extra")

	if code := Execute(); code != -1 {
		t.Fatalf("Execute() = %d, want -1", code)
	}
	if _, err := os.Stat(layout.InstallDir()); !os.IsNotExist(err) {
		t.Errorf("no work should happen on usage errors: %v", err)
	}
}
