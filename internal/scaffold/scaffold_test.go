package scaffold

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/mlffkit/mlffkit/internal/layout"
	"github.com/mlffkit/mlffkit/internal/vcs"
)

// fakeRepo records Init calls instead of running git.
type fakeRepo struct {
	calls []string
	err   error
}

func (f *fakeRepo) Init(_ context.Context, dir, branch string) error {
	f.calls = append(f.calls, dir+"@"+branch)
	if f.err != nil {
		return f.err
	}
	return os.MkdirAll(filepath.Join(dir, ".git"), 0755)
}

func TestGenerateDefaultLayout(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")
	repo := &fakeRepo{}

	result, err := Generate(context.Background(), l, root, Options{Repo: repo})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	for _, d := range l.Directories {
		assertDir(t, root, d)
	}
	for _, f := range l.Files {
		if f.IsPlaceholder() {
			assertEmptyFile(t, root, f.Path)
		}
	}
	assertEmptyFile(t, root, "data/00_raw/.gitkeep")

	gitignore := readGenerated(t, root, ".gitignore")
	if gitignore != gitignoreContent(t, l) {
		t.Errorf(".gitignore content does not match the layout byte for byte")
	}

	if len(repo.calls) != 1 || repo.calls[0] != root+"@" {
		t.Errorf("repo init calls = %v, want [%s@]", repo.calls, root)
	}
	if !result.GitInitialized {
		t.Error("GitInitialized should be true")
	}
	if got, want := len(result.Directories), len(l.Directories)+1; got != want {
		t.Errorf("created %d directories, want %d", got, want)
	}
	if got, want := len(result.Files), len(l.Files); got != want {
		t.Errorf("created %d files, want %d", got, want)
	}
	if len(result.Skipped) != 0 {
		t.Errorf("unexpected skipped entries: %v", result.Skipped)
	}
}

func TestGenerateProducesExactTree(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")

	if _, err := Generate(context.Background(), l, root, Options{SkipGit: true}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	want := map[string]bool{"data": true, "src": true, "paper": true, "results": true}
	for _, d := range l.Directories {
		want[d] = true
	}
	for _, f := range l.Files {
		want[f.Path] = true
	}

	got := map[string]bool{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		if rel != "." {
			got[filepath.ToSlash(rel)] = true
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != len(want) {
		t.Errorf("tree has %d entries, want %d\ngot:  %v\nwant: %v", len(got), len(want), keys(got), keys(want))
	}
	for p := range want {
		if !got[p] {
			t.Errorf("missing %s", p)
		}
	}
	for p := range got {
		if !want[p] {
			t.Errorf("unexpected %s", p)
		}
	}
}

func TestGenerateTwiceIsIdempotent(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")
	opts := Options{Repo: &fakeRepo{}}

	if _, err := Generate(context.Background(), l, root, opts); err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}

	// User edits survive a second run; the managed .gitignore does not.
	writeFile(t, filepath.Join(root, "README.md"), "# Cr-Sb-Te benchmark\n")
	writeFile(t, filepath.Join(root, ".gitignore"), "custom\n")

	result, err := Generate(context.Background(), l, root, opts)
	if err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}

	if got := readGenerated(t, root, "README.md"); got != "# Cr-Sb-Te benchmark\n" {
		t.Errorf("README.md was modified: %q", got)
	}
	if got := readGenerated(t, root, ".gitignore"); got != gitignoreContent(t, l) {
		t.Errorf(".gitignore should be restored to the layout content, got %q", got)
	}

	if len(result.Directories) != 0 {
		t.Errorf("second run created directories: %v", result.Directories)
	}
	if len(result.Files) != 1 || result.Files[0] != ".gitignore" {
		t.Errorf("second run files = %v, want [.gitignore]", result.Files)
	}
	if got, want := len(result.Skipped), len(l.Directories)+1+len(l.Files)-1; got != want {
		t.Errorf("skipped %d entries, want %d", got, want)
	}
}

func TestGenerateDryRunTouchesNothing(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")
	repo := &fakeRepo{}
	var out bytes.Buffer

	result, err := Generate(context.Background(), l, root, Options{DryRun: true, Out: &out, Repo: repo})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if _, err := os.Stat(root); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("dry run created %s", root)
	}
	if len(repo.calls) != 0 {
		t.Errorf("dry run initialized a repository")
	}
	if !result.DryRun {
		t.Error("Result.DryRun should be set")
	}

	text := out.String()
	for _, want := range []string{"mkdir -p " + root, "touch " + filepath.Join(root, "src", "__init__.py"), "write " + filepath.Join(root, ".gitignore"), "git init " + root} {
		if !strings.Contains(text, want) {
			t.Errorf("dry-run output missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(result.Summary(), "Dry run") {
		t.Errorf("Summary() = %q", result.Summary())
	}
}

func TestGenerateSkipGit(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")
	repo := &fakeRepo{}

	result, err := Generate(context.Background(), l, root, Options{SkipGit: true, Repo: repo})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(repo.calls) != 0 || result.GitInitialized {
		t.Error("git should not be initialized with SkipGit")
	}
}

func TestGenerateInitialBranchOverride(t *testing.T) {
	l := defaultLayout(t)
	l.Git.InitialBranch = "main"
	root := filepath.Join(t.TempDir(), "demo")

	repo := &fakeRepo{}
	if _, err := Generate(context.Background(), l, root, Options{Repo: repo}); err != nil {
		t.Fatal(err)
	}
	if repo.calls[0] != root+"@main" {
		t.Errorf("layout branch not used: %v", repo.calls)
	}

	repo = &fakeRepo{}
	if _, err := Generate(context.Background(), l, root, Options{Repo: repo, InitialBranch: "trunk"}); err != nil {
		t.Fatal(err)
	}
	if repo.calls[0] != root+"@trunk" {
		t.Errorf("option branch not used: %v", repo.calls)
	}
}

func TestGenerateVerboseOutput(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")
	var out bytes.Buffer
	opts := Options{Verbose: true, Out: &out, Repo: &fakeRepo{}}

	if _, err := Generate(context.Background(), l, root, opts); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[ OK ] mkdir -p "+filepath.Join(root, "notebooks")) {
		t.Errorf("missing OK line:\n%s", out.String())
	}

	out.Reset()
	if _, err := Generate(context.Background(), l, root, opts); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[SKIP] "+filepath.Join(root, "README.md")+" already exists") {
		t.Errorf("missing SKIP line:\n%s", out.String())
	}
}

func TestGenerateAbortsOnFileWhereDirExpected(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "notebooks"), "not a directory")

	repo := &fakeRepo{}
	_, err := Generate(context.Background(), l, root, Options{Repo: repo})
	if err == nil {
		t.Fatal("expected error")
	}

	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if serr.Op != "mkdir" || serr.Path != filepath.Join(root, "notebooks") {
		t.Errorf("Error = {Op: %q, Path: %q}", serr.Op, serr.Path)
	}
	if !strings.Contains(err.Error(), filepath.Join(root, "notebooks")) {
		t.Errorf("message should name the path: %v", err)
	}

	// Earlier steps stay in place; later ones never ran.
	assertDir(t, root, "data/02_benchmark")
	if _, err := os.Stat(filepath.Join(root, "scripts")); !errors.Is(err, fs.ErrNotExist) {
		t.Error("steps after the failure should not run")
	}
	if len(repo.calls) != 0 {
		t.Error("git init should not run after a failure")
	}
}

func TestGenerateAbortsOnDirWhereFileExpected(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")
	if err := os.MkdirAll(filepath.Join(root, "LICENSE"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := Generate(context.Background(), l, root, Options{Repo: &fakeRepo{}})
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if serr.Op != "touch" || filepath.Base(serr.Path) != "LICENSE" {
		t.Errorf("Error = {Op: %q, Path: %q}", serr.Op, serr.Path)
	}
}

func TestGeneratePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	l := defaultLayout(t)
	parent := t.TempDir()
	if err := os.Chmod(parent, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(parent, 0755) })

	_, err := Generate(context.Background(), l, filepath.Join(parent, "demo"), Options{Repo: &fakeRepo{}})
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("error = %v, want fs.ErrPermission", err)
	}
}

func TestGenerateRepoFailure(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")
	boom := errors.New("git exploded")

	_, err := Generate(context.Background(), l, root, Options{Repo: &fakeRepo{err: boom}})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
	var serr *Error
	if errors.As(err, &serr) && serr.Op != "git-init" {
		t.Errorf("Op = %q, want git-init", serr.Op)
	}
	// The tree itself is complete.
	assertEmptyFile(t, root, "paper/references.bib")
}

func TestGenerateCanceledContext(t *testing.T) {
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, l, root, Options{Repo: &fakeRepo{}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(root); !errors.Is(err, fs.ErrNotExist) {
		t.Error("nothing should be created after cancellation")
	}
}

func TestGenerateWithGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	l := defaultLayout(t)
	root := filepath.Join(t.TempDir(), "demo")

	for i := 0; i < 2; i++ {
		if _, err := Generate(context.Background(), l, root, Options{}); err != nil {
			t.Fatalf("Generate() run %d error: %v", i+1, err)
		}
	}
	if !vcs.IsRepo(root) {
		t.Error("expected a git repository at the root")
	}
}

func TestBuildPlanOrder(t *testing.T) {
	l := defaultLayout(t)
	p := BuildPlan(l, "demo", Options{})

	if first := p.Steps[0]; first.Kind != KindMkdir || first.Path != "demo" {
		t.Errorf("first step = %v, want mkdir of the root", first)
	}
	if last := p.Steps[len(p.Steps)-1]; last.Kind != KindGitInit {
		t.Errorf("last step = %v, want git init", last)
	}

	seenFile := false
	for _, s := range p.Steps {
		switch s.Kind {
		case KindMkdir:
			if seenFile {
				t.Errorf("directory %s planned after a file", s.Rel)
			}
		case KindTouch, KindWrite:
			seenFile = true
		}
	}

	if got := len(BuildPlan(l, "demo", Options{SkipGit: true}).Steps); got != len(p.Steps)-1 {
		t.Errorf("SkipGit plan has %d steps, want %d", got, len(p.Steps)-1)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func defaultLayout(t *testing.T) *layout.Layout {
	t.Helper()
	l, err := layout.Default()
	if err != nil {
		t.Fatalf("layout.Default() error: %v", err)
	}
	return l
}

func gitignoreContent(t *testing.T, l *layout.Layout) string {
	t.Helper()
	for _, f := range l.Files {
		if f.Path == ".gitignore" {
			return f.Content
		}
	}
	t.Fatal("layout has no .gitignore")
	return ""
}

func readGenerated(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertDir(t *testing.T, root, rel string) {
	t.Helper()
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Errorf("%s: %v", rel, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", rel)
	}
}

func assertEmptyFile(t *testing.T, root, rel string) {
	t.Helper()
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Errorf("%s: %v", rel, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("%s is not a regular file", rel)
	}
	if info.Size() != 0 {
		t.Errorf("%s has %d bytes, want 0", rel, info.Size())
	}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
