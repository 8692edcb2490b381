package layout

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed defaults/mlff-benchmark.yaml
var defaultLayout []byte

// DefaultName is the name of the embedded layout.
const DefaultName = "mlff-benchmark"

// Default returns the embedded MLFF benchmark layout, fully expanded.
func Default() (*Layout, error) {
	l, err := Parse(defaultLayout)
	if err != nil {
		return nil, fmt.Errorf("embedded layout: %w", err)
	}
	return l, nil
}

// DefaultSource returns the raw YAML of the embedded layout.
func DefaultSource() []byte {
	return append([]byte(nil), defaultLayout...)
}

// Load reads a layout file from disk. See Parse.
func Load(p string) (*Layout, error) {
	data, err := readFile(p)
	if err != nil {
		return nil, err
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading layout %s: %w", p, err)
	}
	return l, nil
}

// Parse validates raw YAML against the layout schema, decodes it, and expands
// brace shorthand in every directory and file path.
func Parse(data []byte) (*Layout, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("schema validation failed:\n  %s", strings.Join(result.Messages(), "\n  "))
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	if _, err := semver.NewVersion(l.Version); err != nil {
		return nil, fmt.Errorf("layout %s: invalid version %q: %w", l.Name, l.Version, err)
	}
	if err := ValidateRootName(l.Root); err != nil {
		return nil, fmt.Errorf("layout %s: %w", l.Name, err)
	}
	if err := l.expand(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", l.Name, err)
	}
	return &l, nil
}

// ValidateRootName checks that name is a single path segment.
func ValidateRootName(name string) error {
	if name == "" {
		return fmt.Errorf("root name is empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid root name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("root name %q must not contain path separators", name)
	}
	return nil
}

// expand replaces brace shorthand with concrete paths and rejects unsafe,
// duplicate, or conflicting entries.
func (l *Layout) expand() error {
	dirs := make(map[string]bool)
	var expandedDirs []string
	for _, d := range l.Directories {
		paths, err := ExpandBraces(d)
		if err != nil {
			return err
		}
		for _, p := range paths {
			if err := checkPath(p); err != nil {
				return err
			}
			if dirs[p] {
				return fmt.Errorf("directory %q declared more than once", p)
			}
			dirs[p] = true
			expandedDirs = append(expandedDirs, p)
		}
	}

	files := make(map[string]bool)
	var expandedFiles []File
	for _, f := range l.Files {
		paths, err := ExpandBraces(f.Path)
		if err != nil {
			return err
		}
		for _, p := range paths {
			if err := checkPath(p); err != nil {
				return err
			}
			if files[p] {
				return fmt.Errorf("file %q declared more than once", p)
			}
			if dirs[p] {
				return fmt.Errorf("%q declared as both a directory and a file", p)
			}
			files[p] = true
			expandedFiles = append(expandedFiles, File{Path: p, Content: f.Content, Overwrite: f.Overwrite})
		}
	}

	// A file may not sit where a declared directory expects a parent.
	for d := range dirs {
		for parent := path.Dir(d); parent != "."; parent = path.Dir(parent) {
			if files[parent] {
				return fmt.Errorf("file %q is the parent of directory %q", parent, d)
			}
		}
	}

	l.Directories = expandedDirs
	l.Files = expandedFiles
	return nil
}

// checkPath accepts only clean, relative, slash-separated paths that stay
// inside the project root.
func checkPath(p string) error {
	if p == "" || p == "." {
		return fmt.Errorf("empty path")
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return fmt.Errorf("path %q must be relative and use forward slashes", p)
	}
	if path.Clean(p) != p {
		return fmt.Errorf("path %q is not in clean form (expected %q)", p, path.Clean(p))
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return fmt.Errorf("path %q escapes the project root", p)
		}
	}
	return nil
}

// Marshal encodes the layout as YAML.
func (l *Layout) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encoding layout %s: %w", l.Name, err)
	}
	return out, nil
}

// readFile reads the contents of a file at the given path.
func readFile(p string) ([]byte, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", p, err)
	}
	return data, nil
}
