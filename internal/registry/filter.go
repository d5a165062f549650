package registry

import (
	"path"
	"strings"
)

// Filter filters checks by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// ByName filters checks by name pattern using wildcard matching.
// Patterns match against the check name and the suite/name ID, so both
// "*out-of-memory*" and "memory/*" work.
func (f *Filter) ByName(cases []Case, pattern string) []Case {
	if pattern == "" {
		return cases
	}

	var filtered []Case

	for _, c := range cases {
		if f.matches(c.Name, pattern) || f.matches(c.ID(), pattern) {
			filtered = append(filtered, c)
		}
	}

	return filtered
}

// BySuite keeps only checks belonging to one of the given suites.
func (f *Filter) BySuite(cases []Case, suites []string) []Case {
	if len(suites) == 0 {
		return cases
	}

	want := make(map[string]bool, len(suites))
	for _, s := range suites {
		want[s] = true
	}

	var filtered []Case
	for _, c := range cases {
		if want[c.Suite] {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func (f *Filter) matches(name, pattern string) bool {
	// Try path.Match first (supports * and ? wildcards)
	if matched, err := path.Match(pattern, name); err == nil && matched {
		return true
	}

	// If pattern contains wildcards but path.Match didn't match, fall
	// back to a flexible substring match for patterns like "*memory*".
	if strings.Contains(pattern, "*") {
		parts := strings.Split(pattern, "*")
		hasNonEmptyPart := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// No wildcards: simple contains check
	return strings.Contains(name, pattern)
}
