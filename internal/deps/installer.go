// Copyright 2024 The llar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/qiniu/x/log"

	"github.com/rtchallenge/installdeps/internal/env"
	"github.com/rtchallenge/installdeps/internal/fsutil"
	"github.com/rtchallenge/installdeps/internal/vcs"
	"github.com/rtchallenge/installdeps/pkgs/buildsys"
	"github.com/rtchallenge/installdeps/pkgs/buildsys/cmake"
)

// BuildFunc prepares the build system for a cloned dependency.
// arch is the generator platform, empty when none is needed.
type BuildFunc func(dep Dependency, sourceDir, installDir, arch string) buildsys.BuildSystem

// CMakeBuild is the default BuildFunc.
func CMakeBuild(dep Dependency, sourceDir, installDir, arch string) buildsys.BuildSystem {
	c := cmake.New(sourceDir)
	c.InstallDir(installDir)
	c.Arch(arch)
	for k, v := range dep.Options {
		c.DefineBool(k, v)
	}
	return c
}

// Installer clones, builds and installs dependencies below Layout.
// It assumes exclusive use of the vendor directories.
type Installer struct {
	Layout   env.Layout
	VCS      vcs.VCS
	NewBuild BuildFunc
	// GOOS selects platform specific configure flags.
	GOOS string
	// Clear removes an existing installation instead of skipping it.
	Clear bool
}

// New returns an Installer using git and CMake for the host platform.
func New(layout env.Layout) *Installer {
	return &Installer{
		Layout:   layout,
		VCS:      vcs.NewGitVCS(),
		NewBuild: CMakeBuild,
		GOOS:     runtime.GOOS,
	}
}

// Run installs deps in order and removes the scratch directory afterwards.
// On failure the scratch directory is left in place for inspection.
func (in *Installer) Run(ctx context.Context, deps ...Dependency) error {
	if err := in.Layout.Ensure(); err != nil {
		return fmt.Errorf("prepare %s: %w", in.Layout.InstallDir(), err)
	}
	for _, dep := range deps {
		if err := in.Install(ctx, dep); err != nil {
			return err
		}
	}
	if err := fsutil.RemoveAll(in.Layout.TmpDir()); err != nil {
		return fmt.Errorf("clean up %s: %w", in.Layout.TmpDir(), err)
	}
	return nil
}

// Install installs a single dependency. It is a no-op when the dependency's
// install directory already exists and Clear is not set.
// Layout.Ensure must have been called.
func (in *Installer) Install(ctx context.Context, dep Dependency) error {
	if err := dep.Validate(); err != nil {
		return err
	}

	installDir := in.Layout.Dep(dep.Name)
	_, err := os.Stat(installDir)
	switch {
	case err == nil && !in.Clear:
		log.Infof("%s already installed", dep.Name)
		return nil
	case err == nil:
		log.Infof("removing previous install of %s", dep.Name)
		if err := fsutil.RemoveAll(installDir); err != nil {
			return fmt.Errorf("remove %s: %w", installDir, err)
		}
	case !os.IsNotExist(err):
		return err
	}

	sourceDir := filepath.Join(in.Layout.TmpDir(), dep.checkoutDir())
	if err := fsutil.RemoveAll(sourceDir); err != nil {
		return fmt.Errorf("remove stale checkout %s: %w", sourceDir, err)
	}

	log.Infof("cloning %s", dep)
	if err := in.VCS.Clone(ctx, dep.Remote, dep.Tag, sourceDir); err != nil {
		return err
	}

	arch := cmake.PlatformArch(in.GOOS)
	bs := in.NewBuild(dep, sourceDir, installDir, arch)
	log.Debugf("configure %s: source=%s prefix=%s arch=%q", dep.Name, sourceDir, installDir, arch)
	if err := bs.Configure(); err != nil {
		return fmt.Errorf("configure %s: %w", dep, err)
	}
	log.Infof("installing %s to %s", dep, bs.OutputDir())
	if err := bs.Build("--target", "install"); err != nil {
		return fmt.Errorf("build %s: %w", dep, err)
	}
	return nil
}
