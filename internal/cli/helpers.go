package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mlffkit/mlffkit/internal/config"
	"github.com/mlffkit/mlffkit/internal/layout"
)

// resolveLayout picks the layout from the flag, then the "layout" config key,
// then the embedded default.
func resolveLayout(flagPath string) (*layout.Layout, error) {
	p := flagPath
	if p == "" {
		p = config.Get(config.KeyLayout)
	}
	if p == "" {
		return layout.Default()
	}
	return layout.Load(p)
}

// resolveRoot picks the project root from the argument, then the
// "project.name" config key, then the layout's default root.
func resolveRoot(args []string, l *layout.Layout) (string, error) {
	root := l.Root
	if v := config.Get(config.KeyProjectName); v != "" {
		root = v
	}
	if len(args) > 0 {
		root = args[0]
	}

	if err := layout.ValidateRootName(filepath.Base(filepath.Clean(root))); err != nil {
		return "", fmt.Errorf("invalid project root %q: %w", root, err)
	}
	return root, nil
}
