package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/mlffkit/mlffkit/internal/layout"
)

// Kind identifies what a plan step does.
type Kind string

const (
	KindMkdir   Kind = "mkdir"
	KindTouch   Kind = "touch"
	KindWrite   Kind = "write"
	KindGitInit Kind = "git-init"
)

// Step is a single filesystem operation.
type Step struct {
	Kind      Kind
	Path      string // Absolute or caller-relative path on disk
	Rel       string // Path relative to the project root ("." for the root)
	Content   string // Bytes to write (KindWrite only)
	Overwrite bool   // Replace existing content (KindWrite only)
	Branch    string // Initial branch (KindGitInit only)
}

// String renders the step the way a shell user would type it.
func (s Step) String() string {
	switch s.Kind {
	case KindMkdir:
		return "mkdir -p " + s.Path
	case KindTouch:
		return "touch " + s.Path
	case KindWrite:
		return fmt.Sprintf("write %s (%d bytes)", s.Path, len(s.Content))
	case KindGitInit:
		if s.Branch != "" {
			return fmt.Sprintf("git init -b %s %s", s.Branch, s.Path)
		}
		return "git init " + s.Path
	default:
		return string(s.Kind) + " " + s.Path
	}
}

// Plan is the ordered list of steps for one scaffold run.
type Plan struct {
	Root  string
	Steps []Step
}

// BuildPlan orders the work: the root first, then directories in declared
// order, then files, then repository initialization. Parents therefore always
// precede their children.
func BuildPlan(l *layout.Layout, root string, opts Options) Plan {
	p := Plan{Root: root}

	p.Steps = append(p.Steps, Step{Kind: KindMkdir, Path: root, Rel: "."})
	for _, d := range l.Directories {
		p.Steps = append(p.Steps, Step{
			Kind: KindMkdir,
			Path: filepath.Join(root, filepath.FromSlash(d)),
			Rel:  d,
		})
	}

	for _, f := range l.Files {
		s := Step{
			Kind: KindTouch,
			Path: filepath.Join(root, filepath.FromSlash(f.Path)),
			Rel:  f.Path,
		}
		if !f.IsPlaceholder() {
			s.Kind = KindWrite
			s.Content = f.Content
			s.Overwrite = f.Overwrite
		}
		p.Steps = append(p.Steps, s)
	}

	if l.Git.Init && !opts.SkipGit {
		branch := l.Git.InitialBranch
		if opts.InitialBranch != "" {
			branch = opts.InitialBranch
		}
		p.Steps = append(p.Steps, Step{Kind: KindGitInit, Path: root, Rel: ".", Branch: branch})
	}

	return p
}
