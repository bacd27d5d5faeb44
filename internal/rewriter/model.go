package rewriter

import (
	"strings"

	"addonlinux/internal/normalizer"
)

// RewriteModel rewrites the path-bearing records of a model (.dat)
// file. Only three record types carry external paths: INSTPANL
// (instrument panel), WPNSHAPE (weapon mesh) and CARRIER (carrier
// object properties). Every other line passes through unchanged.
func RewriteModel(rules normalizer.Rules, lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)

	for row, line := range lines {
		switch {
		case strings.HasPrefix(line, "INSTPANL") && strings.Contains(line, ".ist"):
			// The path may be followed by an inline comment, which is
			// dropped on output along with the spaces separating it
			// from the path.
			if i := strings.Index(line, "#"); i >= 0 {
				line = strings.TrimRight(line[:i], " ")
			}
			path := rules.Normalize(tail(line, 9))
			out[row] = head(line, 8) + " " + path

		case strings.HasPrefix(line, "WPNSHAPE") && hasMeshRef(line):
			// The descriptor and the path are separated by a state
			// marker; the path is the last segment.
			marker := "STATIC"
			if strings.Contains(line, "FLYING") {
				marker = "FLYING"
			}
			parts := strings.Split(line, marker)
			last := parts[len(parts)-1]
			path := rules.Normalize(tail(last, 1))
			parts[len(parts)-1] = " " + path
			out[row] = strings.Join(parts, marker)

		case strings.HasPrefix(line, "CARRIER") && strings.Contains(line, "."):
			fields := strings.Fields(line)
			path := rules.Normalize(fields[len(fields)-1])
			out[row] = head(line, 8) + " " + path
		}
	}

	return out
}

// hasMeshRef reports whether the line references a mesh file, in
// either casing.
func hasMeshRef(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, ".srf") || strings.Contains(lower, ".dnm")
}
