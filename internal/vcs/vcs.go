// Package vcs initializes version-control repositories by shelling out to git.
package vcs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Git runs the git binary. The zero value uses "git" from PATH.
type Git struct {
	// Binary overrides the executable name or path.
	Binary string
}

func (g Git) binary() string {
	if g.Binary != "" {
		return g.Binary
	}
	return "git"
}

// Available returns an error when the git binary cannot be found.
func (g Git) Available() error {
	if _, err := exec.LookPath(g.binary()); err != nil {
		return fmt.Errorf("%s is required but not found in PATH", g.binary())
	}
	return nil
}

// Init creates (or reinitializes) a repository in dir. When branch is set the
// initial branch is named accordingly; git older than 2.28 lacks
// "init -b", so that case falls back to pointing HEAD at the branch.
func (g Git) Init(ctx context.Context, dir, branch string) error {
	if err := g.Available(); err != nil {
		return err
	}

	if branch == "" {
		return g.run(ctx, dir, "init")
	}

	if err := g.run(ctx, dir, "init", "-b", branch); err == nil {
		return nil
	}
	if err := g.run(ctx, dir, "init"); err != nil {
		return err
	}
	return g.run(ctx, dir, "symbolic-ref", "HEAD", "refs/heads/"+branch)
}

func (g Git) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, g.binary(), args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w\n%s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}

// IsRepo reports whether dir holds a .git directory.
func IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}
