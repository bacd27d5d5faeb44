package rewriter

import (
	"strings"

	"addonlinux/internal/normalizer"
)

// fieldRefExtensions are the file types a field (.fld) file may
// reference externally. FIL records naming anything else are
// internal structure and must not be touched.
var fieldRefExtensions = []string{".fld", ".pc2", ".ter", ".srf"}

// RewriteField rewrites the external references of a field (.fld)
// file. Names declared by PCK records are parts packed inside the
// file itself, not external files, so FIL records naming them are
// left alone. Rewritten paths are always emitted quoted, whether or
// not the input was.
func RewriteField(rules normalizer.Rules, lines []string) []string {
	names := make(map[string]bool)
	for _, line := range lines {
		if strings.HasPrefix(line, "PCK ") {
			if parts := strings.Split(line, `"`); len(parts) >= 2 {
				names[parts[1]] = true
			}
		}
	}

	out := make([]string, len(lines))
	copy(out, lines)

	for row, line := range lines {
		if !strings.HasPrefix(line, "FIL") || !strings.Contains(line, ".") {
			continue
		}
		if !hasFieldRef(line) {
			continue
		}

		var path string
		if strings.Contains(line, `"`) {
			path = strings.Split(line, `"`)[1]
		} else {
			path = tail(line, 4)
		}

		if !names[path] {
			out[row] = `FIL "` + rules.Normalize(path) + `"`
		}
	}

	return out
}

// hasFieldRef reports whether the line names one of the externally
// referenceable field file types, in either casing.
func hasFieldRef(line string) bool {
	lower := strings.ToLower(line)
	for _, ext := range fieldRefExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}
