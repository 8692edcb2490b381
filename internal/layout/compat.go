package layout

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// devVersion is the version string of builds without ldflags.
const devVersion = "dev"

// CheckCompatible returns an error when the layout's requires constraint
// rejects the running tool version. Development builds always pass.
func (l *Layout) CheckCompatible(toolVersion string) error {
	if l.Requires == "" || toolVersion == devVersion || toolVersion == "" {
		return nil
	}

	c, err := semver.NewConstraint(l.Requires)
	if err != nil {
		return fmt.Errorf("layout %s: invalid requires constraint %q: %w", l.Name, l.Requires, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(toolVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing tool version %q: %w", toolVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("layout %s requires version %s, running %s", l.Name, l.Requires, toolVersion)
	}
	return nil
}
