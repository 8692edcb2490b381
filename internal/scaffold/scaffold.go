package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mlffkit/mlffkit/internal/layout"
	"github.com/mlffkit/mlffkit/internal/vcs"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default permissions for created entries.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

var printer = message.NewPrinter(language.English)

// RepoInitializer creates a version-control repository in a directory.
type RepoInitializer interface {
	Init(ctx context.Context, dir, branch string) error
}

// Options tunes a scaffold run. The zero value scaffolds for real, initializes
// git when the layout asks for it, and prints nothing.
type Options struct {
	DryRun        bool
	SkipGit       bool
	InitialBranch string          // Overrides the layout's git.initial_branch
	Verbose       bool            // Print one [ OK ]/[SKIP] line per step
	Out           io.Writer       // Progress and dry-run output; nil discards
	Repo          RepoInitializer // Defaults to vcs.Git{}
}

// Result holds the outcome of a scaffold run.
type Result struct {
	Root           string
	Directories    []string // Created this run, relative to Root
	Files          []string // Created or rewritten this run, relative to Root
	Skipped        []string // Already present, left untouched
	GitInitialized bool
	DryRun         bool
	Plan           Plan
}

// Summary returns a one-line count of what the run did.
func (r *Result) Summary() string {
	if r.DryRun {
		return printer.Sprintf("Dry run: %d steps planned, nothing written", len(r.Plan.Steps))
	}
	return printer.Sprintf("%d directories and %d files created, %d already present",
		len(r.Directories), len(r.Files), len(r.Skipped))
}

// Generate applies layout l under root. It stops at the first failing step
// and returns an *Error naming the operation and path; entries created before
// the failure are left in place.
func Generate(ctx context.Context, l *layout.Layout, root string, opts Options) (*Result, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Repo == nil {
		opts.Repo = vcs.Git{}
	}

	plan := BuildPlan(l, root, opts)
	result := &Result{Root: root, Plan: plan, DryRun: opts.DryRun}

	if opts.DryRun {
		for _, s := range plan.Steps {
			fmt.Fprintln(opts.Out, s.String())
		}
		return result, nil
	}

	for _, s := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return result, &Error{Op: string(s.Kind), Path: s.Path, Err: err}
		}

		created, err := apply(ctx, s, opts)
		if err != nil {
			return result, &Error{Op: string(s.Kind), Path: s.Path, Err: err}
		}
		record(result, s, created)

		if opts.Verbose {
			if created {
				fmt.Fprintf(opts.Out, "  [ OK ] %s\n", s)
			} else {
				fmt.Fprintf(opts.Out, "  [SKIP] %s already exists\n", s.Path)
			}
		}
	}

	return result, nil
}

func record(r *Result, s Step, created bool) {
	switch {
	case s.Kind == KindGitInit:
		r.GitInitialized = true
	case !created:
		r.Skipped = append(r.Skipped, s.Rel)
	case s.Kind == KindMkdir:
		r.Directories = append(r.Directories, s.Rel)
	default:
		r.Files = append(r.Files, s.Rel)
	}
}

// apply performs one step and reports whether it changed the filesystem.
func apply(ctx context.Context, s Step, opts Options) (bool, error) {
	switch s.Kind {
	case KindMkdir:
		return ensureDir(s.Path)
	case KindTouch:
		return ensureFile(s.Path, "", false)
	case KindWrite:
		return ensureFile(s.Path, s.Content, s.Overwrite)
	case KindGitInit:
		return true, opts.Repo.Init(ctx, s.Path, s.Branch)
	default:
		return false, fmt.Errorf("unknown step kind %q", s.Kind)
	}
}

// ensureDir creates path and any missing parents. An existing directory is
// left alone; an existing non-directory is a conflict.
func ensureDir(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("path exists and is not a directory")
	case !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	if err := os.MkdirAll(path, DirPerm); err != nil {
		return false, err
	}
	return true, nil
}

// ensureFile creates path with content. An existing regular file is kept
// unless overwrite is set, in which case its content is replaced.
func ensureFile(path, content string, overwrite bool) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, fmt.Errorf("path exists and is a directory")
	case err == nil && !info.Mode().IsRegular():
		return false, fmt.Errorf("path exists and is not a regular file")
	case err == nil && !overwrite:
		return false, nil
	case err == nil:
		return true, os.WriteFile(path, []byte(content), FilePerm)
	case !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, FilePerm)
	if err != nil {
		return false, err
	}
	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}
