package rewriter

import (
	"path/filepath"
	"strings"

	"addonlinux/internal/classifier"
	"addonlinux/internal/normalizer"
)

// minDiagnosticLineLen is the shortest line worth validating; shorter
// lines are placeholders or blank.
const minDiagnosticLineLen = 20

// RewriteList normalizes every line of a list (.lst) file in full and
// returns diagnostics for fields that still look like broken paths.
//
// Scenery lists carry a map name as the first field of each line;
// that field is exempt from path validation (it is a label, though it
// is still case-folded along with the rest of the line, which is what
// the simulator expects).
func RewriteList(rules normalizer.Rules, filename string, lines []string) ([]string, []Diagnostic) {
	isScenery := classifier.IsSceneryList(filename)
	base := filepath.Base(filename)

	out := make([]string, len(lines))
	for row, line := range lines {
		out[row] = rules.Normalize(line)
	}

	var diags []Diagnostic
	for row, line := range out {
		if len(line) <= minDiagnosticLineLen {
			continue
		}
		for element, field := range strings.Split(line, " ") {
			// Fields of one or two characters are placeholders for
			// omitted assets, not paths.
			if len(field) <= 2 {
				continue
			}
			if isScenery && element == 0 {
				continue
			}
			// A path field ends in a file extension; scenery paths
			// may carry a trailing quote, so inspect the last few
			// characters rather than just the suffix.
			last := field
			if len(last) > 6 {
				last = last[len(last)-6:]
			}
			if !strings.Contains(last, ".") {
				diags = append(diags, Diagnostic{
					File:  base,
					Line:  row + 1,
					Field: field,
				})
			}
		}
	}

	return out, diags
}
