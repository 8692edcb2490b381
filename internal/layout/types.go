package layout

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Layout is a fully expanded project tree definition.
type Layout struct {
	Name        string   `yaml:"name" json:"name"`
	Version     string   `yaml:"version" json:"version"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Requires    string   `yaml:"requires,omitempty" json:"requires,omitempty"`
	Root        string   `yaml:"root" json:"root"`
	Directories []string `yaml:"directories" json:"directories"`
	Files       []File   `yaml:"files" json:"files"`
	Git         Git      `yaml:"git,omitempty" json:"git,omitempty"`
}

// File is a single file entry. A file without content and without the
// overwrite flag is an empty placeholder created only when absent.
type File struct {
	Path      string `yaml:"path" json:"path"`
	Content   string `yaml:"content,omitempty" json:"content,omitempty"`
	Overwrite bool   `yaml:"overwrite,omitempty" json:"overwrite,omitempty"`
}

// Git controls repository initialization in the new root.
type Git struct {
	Init          bool   `yaml:"init" json:"init"`
	InitialBranch string `yaml:"initial_branch,omitempty" json:"initial_branch,omitempty"`
}

// IsPlaceholder reports whether the file is an empty, create-if-absent marker.
func (f File) IsPlaceholder() bool {
	return f.Content == "" && !f.Overwrite
}

// UnmarshalYAML accepts either a bare path string or a mapping.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: file entry must be a string or a mapping", node.Line)
	}
	type plain File
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*f = File(p)
	return nil
}

// MarshalYAML writes placeholders back in their short string form.
func (f File) MarshalYAML() (interface{}, error) {
	if f.IsPlaceholder() {
		return f.Path, nil
	}
	type plain File
	return plain(f), nil
}
