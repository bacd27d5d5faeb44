// Package rewriter rewrites path references inside the simulator's
// structured text formats so they match a tree whose entries have been
// renamed to lowercase. Each rewriter is a pure transform from an
// input line sequence to a new output sequence; non-path content is
// preserved byte for byte.
package rewriter

import "fmt"

// Diagnostic flags a list-file field that still looks like a broken
// path after normalization (a space survived where a path should be).
type Diagnostic struct {
	File  string // base name of the list file
	Line  int    // 1-based line number
	Field string // the offending field text
}

// String renders the diagnostic for operator output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("potential space in %s line %d: %q", d.File, d.Line, d.Field)
}

// head returns the leading n bytes of s, or all of s when shorter.
// Keyword prefixes in these formats are fixed-width, but damaged
// lines can be shorter than the width.
func head(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// tail returns everything after the leading n bytes of s, or "" when
// s is shorter.
func tail(s string, n int) string {
	if len(s) <= n {
		return ""
	}
	return s[n:]
}
