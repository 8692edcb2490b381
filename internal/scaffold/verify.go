package scaffold

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mlffkit/mlffkit/internal/layout"
	"github.com/mlffkit/mlffkit/internal/vcs"
)

// Issue is one mismatch between a tree on disk and its layout.
type Issue struct {
	Path    string // Relative to the project root
	Problem string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Problem
}

// Verify compares the tree under root with layout l. It returns the list of
// mismatches; the error is reserved for failures reading the tree itself.
// Placeholder files may have been edited since scaffolding, so only their
// existence and type are checked; files with content must match byte for byte.
func Verify(l *layout.Layout, root string, checkGit bool) ([]Issue, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return []Issue{{Path: ".", Problem: "project root does not exist"}}, nil
	}
	if err != nil {
		return nil, &Error{Op: "stat", Path: root, Err: err}
	}
	if !info.IsDir() {
		return []Issue{{Path: ".", Problem: "project root is not a directory"}}, nil
	}

	var issues []Issue
	for _, d := range l.Directories {
		p := filepath.Join(root, filepath.FromSlash(d))
		info, err := os.Stat(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			issues = append(issues, Issue{Path: d, Problem: "missing directory"})
		case err != nil:
			return issues, &Error{Op: "stat", Path: p, Err: err}
		case !info.IsDir():
			issues = append(issues, Issue{Path: d, Problem: "expected a directory"})
		}
	}

	for _, f := range l.Files {
		p := filepath.Join(root, filepath.FromSlash(f.Path))
		info, err := os.Stat(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			issues = append(issues, Issue{Path: f.Path, Problem: "missing file"})
			continue
		case err != nil:
			return issues, &Error{Op: "stat", Path: p, Err: err}
		case !info.Mode().IsRegular():
			issues = append(issues, Issue{Path: f.Path, Problem: "expected a regular file"})
			continue
		}

		if f.IsPlaceholder() {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return issues, &Error{Op: "read", Path: p, Err: err}
		}
		if !bytes.Equal(data, []byte(f.Content)) {
			issues = append(issues, Issue{Path: f.Path, Problem: "content differs from layout"})
		}
	}

	if checkGit && l.Git.Init && !vcs.IsRepo(root) {
		issues = append(issues, Issue{Path: ".git", Problem: "repository not initialized"})
	}

	return issues, nil
}
