// Copyright 2024 The llar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deps

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rtchallenge/installdeps/pkgs/buildsys"
)

// mockVCS implements vcs.VCS for unit testing. By default Clone creates dir
// with a write-protected file inside, like a real git object store.
type mockVCS struct {
	cloneFunc func(ctx context.Context, remote, ref, dir string) error
	clones    []string
}

func (m *mockVCS) Clone(ctx context.Context, remote, ref, dir string) error {
	m.clones = append(m.clones, remote+"@"+ref)
	if m.cloneFunc != nil {
		return m.cloneFunc(ctx, remote, ref, dir)
	}
	objects := filepath.Join(dir, ".git", "objects")
	if err := os.MkdirAll(objects, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(objects, "pack"), []byte(ref), 0o444)
}

// mockBuild implements buildsys.BuildSystem and records the lifecycle calls.
type mockBuild struct {
	sourceDir  string
	installDir string
	arch       string
	options    map[string]bool
	calls      []string

	configureErr error
	buildErr     error
}

var _ buildsys.BuildSystem = (*mockBuild)(nil)

func (m *mockBuild) Source(dir string)     { m.sourceDir = dir }
func (m *mockBuild) InstallDir(dir string) { m.installDir = dir }
func (m *mockBuild) OutputDir() string     { return m.installDir }

func (m *mockBuild) Configure(args ...string) error {
	m.calls = append(m.calls, strings.TrimSpace("configure "+strings.Join(args, " ")))
	return m.configureErr
}

func (m *mockBuild) Build(args ...string) error {
	m.calls = append(m.calls, strings.TrimSpace("build "+strings.Join(args, " ")))
	if m.buildErr != nil {
		return m.buildErr
	}
	include := filepath.Join(m.installDir, "include", "catch2")
	if err := os.MkdirAll(include, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(include, "catch.hpp"), []byte("// catch\n"), 0o644)
}

func (m *mockBuild) Install(args ...string) error {
	m.calls = append(m.calls, strings.TrimSpace("install "+strings.Join(args, " ")))
	return nil
}

// mockBuilds hands out a fresh mockBuild per dependency.
type mockBuilds struct {
	builds       []*mockBuild
	configureErr error
	buildErr     error
}

func (m *mockBuilds) newBuild(dep Dependency, sourceDir, installDir, arch string) buildsys.BuildSystem {
	b := &mockBuild{
		sourceDir:    sourceDir,
		installDir:   installDir,
		arch:         arch,
		options:      dep.Options,
		configureErr: m.configureErr,
		buildErr:     m.buildErr,
	}
	m.builds = append(m.builds, b)
	return b
}
