// Copyright 2024 The llar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// VCS defines the interface for version control operations.
type VCS interface {
	// Clone makes a shallow copy of remote at ref into dir.
	// ref can be a branch or a tag. dir must not exist or be empty.
	Clone(ctx context.Context, remote, ref, dir string) error
}

// gitVCS implements VCS using git.
type gitVCS struct {
	git string
}

// GitOption configures gitVCS.
type GitOption func(*gitVCS)

// WithGitPath sets a custom git executable path.
func WithGitPath(path string) GitOption {
	return func(g *gitVCS) {
		g.git = path
	}
}

// NewGitVCS creates a new git VCS instance.
func NewGitVCS(opts ...GitOption) VCS {
	g := &gitVCS{git: "git"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *gitVCS) Clone(ctx context.Context, remote, ref, dir string) error {
	args := []string{"clone", "--depth", "1", "--branch", ref, remote, dir}
	if err := g.run(ctx, "", args...); err != nil {
		return fmt.Errorf("clone %s@%s: %w", remote, ref, err)
	}
	return nil
}

func (g *gitVCS) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, g.git, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return err
	}
	return nil
}
