// Package tree prints a recursive listing of a directory, hidden entries
// included, in the familiar box-drawing style.
package tree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ddddddO/gtree"
)

// opaque directories are listed but never descended into.
var opaque = map[string]bool{
	".git": true,
}

// Render writes the tree rooted at root to w. The root line shows root as
// given by the caller.
func Render(w io.Writer, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	node := gtree.NewRoot(filepath.Clean(root))
	if err := addChildren(node, root); err != nil {
		return err
	}
	if err := gtree.OutputFromRoot(w, node); err != nil {
		return fmt.Errorf("rendering tree: %w", err)
	}
	return nil
}

// addChildren appends the entries of dir to parent. os.ReadDir returns
// entries sorted by name, which keeps the output stable.
func addChildren(parent *gtree.Node, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, e := range entries {
		child := parent.Add(e.Name())
		if !e.IsDir() || opaque[e.Name()] {
			continue
		}
		if err := addChildren(child, filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
