package main

import (
	"sort"
	"strings"
)

// cleanName turns a candidate into a string that is safe to use as a tmux
// session name. Spaces, colons, and quotes are dropped, and dots are replaced
// because tmux treats them as window separators in targets. Cleaning is
// idempotent.
func cleanName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case ' ', ':', '\'', '"':
			// dropped
		case '.':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sessionName derives the session name for the given mode tag and hosts.
// With sorting enabled, the same host set always yields the same name
// regardless of argument order. The mode tag always stays in front, and an
// optional hostname prefix in front of that.
func sessionName(prefix string, sortHosts bool, tag string, hosts []string) string {
	if sortHosts {
		sorted := make([]string, len(hosts))
		copy(sorted, hosts)
		sort.Strings(sorted)
		hosts = sorted
	}

	parts := make([]string, 0, len(hosts)+2)
	if len(prefix) > 0 {
		parts = append(parts, prefix)
	}
	if len(tag) > 0 {
		parts = append(parts, tag)
	}
	parts = append(parts, hosts...)

	return cleanName(strings.Join(parts, "_"))
}

// shortHostname reduces a hostname to its first label.
func shortHostname(hostname string) string {
	if i := strings.IndexByte(hostname, '.'); i >= 0 {
		return hostname[:i]
	}
	return hostname
}
