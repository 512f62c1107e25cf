package middleware

import "strings"

// RouteMatcher reports whether a path belongs to a configured allow-list.
// A pattern matches its exact path; a pattern ending in "/*" also matches
// every path below the prefix.
type RouteMatcher struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewRouteMatcher builds a matcher from patterns such as "/", "/data" or "/reports/*".
// Blank patterns are ignored.
func NewRouteMatcher(patterns ...string) *RouteMatcher {
	m := &RouteMatcher{exact: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			m.exact[prefix] = struct{}{}
			if prefix == "" {
				m.exact["/"] = struct{}{}
			}
			m.prefixes = append(m.prefixes, prefix+"/")
			continue
		}
		m.exact[p] = struct{}{}
	}
	return m
}

// Match reports whether path is protected.
func (m *RouteMatcher) Match(path string) bool {
	if _, ok := m.exact[path]; ok {
		return true
	}
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
