package emit

import (
	"sort"
	"strings"
)

// DepFile describes a make-style dependency stanza: one target with the
// source files that produced it as prerequisites.
type DepFile struct {
	// Target is the path named on the left of the colon.
	Target string
	// Prereqs are the input file paths, listed in build order.
	Prereqs []string
	// RootVars maps make variable names to absolute directory prefixes.
	// Prerequisites under a prefix are rewritten to $(VAR)/rest so the
	// dep file stays valid when the tree is relocated.
	RootVars map[string]string
}

// Render produces the dependency file content. The target and every
// prerequisite go through root var substitution; prerequisite lines are
// continuation-escaped except the last one.
func (d *DepFile) Render() string {
	var b strings.Builder
	target := d.substitute(d.Target)
	if len(d.Prereqs) == 0 {
		b.WriteString(target + ":\n")
		return b.String()
	}
	b.WriteString(target + ": \\\n")
	for i, p := range d.Prereqs {
		b.WriteString("  " + d.substitute(p))
		if i < len(d.Prereqs)-1 {
			b.WriteString(" \\")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// substitute rewrites path using the longest matching root var prefix. A
// prefix only matches on a path separator boundary; ties on prefix length
// resolve by variable name so the output is deterministic.
func (d *DepFile) substitute(path string) string {
	names := make([]string, 0, len(d.RootVars))
	for name := range d.RootVars {
		names = append(names, name)
	}
	sort.Strings(names)

	bestVar, bestLen := "", 0
	for _, name := range names {
		prefix := strings.TrimRight(d.RootVars[name], "/")
		if prefix == "" || len(prefix) <= bestLen {
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			bestVar, bestLen = name, len(prefix)
		}
	}
	if bestLen == 0 {
		return path
	}
	rest := strings.TrimPrefix(path[bestLen:], "/")
	if rest == "" {
		return "$(" + bestVar + ")"
	}
	return "$(" + bestVar + ")/" + rest
}
