package cafe

import "strings"

// AppendURLs returns current followed by added, leaving current untouched.
func AppendURLs(current, added []string) []string {
	out := make([]string, 0, len(current)+len(added))
	out = append(out, current...)
	return append(out, added...)
}

// RemoveURL drops every entry equal to target.
func RemoveURL(current []string, target string) []string {
	out := make([]string, 0, len(current))
	for _, u := range current {
		if u != target {
			out = append(out, u)
		}
	}
	return out
}

// Reconcile repairs a gallery list against the objects present in storage.
// Entries under managedPrefix whose object is gone are dropped, other entries
// are kept in their original order, and present objects missing from current
// are appended in the order given.
func Reconcile(current, present []string, managedPrefix string) (next []string, changed bool) {
	exists := make(map[string]bool, len(present))
	for _, u := range present {
		exists[u] = true
	}

	seen := make(map[string]bool, len(current))
	next = make([]string, 0, len(current)+len(present))
	for _, u := range current {
		if seen[u] {
			continue
		}
		if exists[u] || !strings.HasPrefix(u, managedPrefix) {
			next = append(next, u)
			seen[u] = true
		}
	}
	for _, u := range present {
		if !seen[u] {
			next = append(next, u)
			seen[u] = true
		}
	}

	if len(next) != len(current) {
		return next, true
	}
	for i := range next {
		if next[i] != current[i] {
			return next, true
		}
	}
	return next, false
}
