package layout

import (
	"fmt"
	"strings"
)

// ExpandBraces expands shell-style brace groups. "data/{raw,processed}"
// yields "data/raw" and "data/processed"; several groups in one string yield
// the cartesian product in left-to-right order. Nested groups are rejected.
func ExpandBraces(s string) ([]string, error) {
	open := strings.IndexByte(s, '{')
	if open < 0 {
		if strings.IndexByte(s, '}') >= 0 {
			return nil, fmt.Errorf("unmatched '}' in %q", s)
		}
		return []string{s}, nil
	}
	if c := strings.IndexByte(s[:open], '}'); c >= 0 {
		return nil, fmt.Errorf("unmatched '}' in %q", s)
	}

	rel := strings.IndexByte(s[open+1:], '}')
	if rel < 0 {
		return nil, fmt.Errorf("unmatched '{' in %q", s)
	}
	closeIdx := open + 1 + rel
	group := s[open+1 : closeIdx]
	if strings.IndexByte(group, '{') >= 0 {
		return nil, fmt.Errorf("nested braces are not supported in %q", s)
	}

	alts := strings.Split(group, ",")
	for _, a := range alts {
		if a == "" {
			return nil, fmt.Errorf("empty alternative in brace group of %q", s)
		}
	}

	prefix, suffix := s[:open], s[closeIdx+1:]
	rest, err := ExpandBraces(suffix)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(alts)*len(rest))
	for _, a := range alts {
		for _, r := range rest {
			out = append(out, prefix+a+r)
		}
	}
	return out, nil
}
