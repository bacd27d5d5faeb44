package rewriter

import (
	"strings"

	"addonlinux/internal/normalizer"
)

// RewriteMesh rewrites the external surface references of a mesh
// (.dnm) file: every FIL record's remainder is normalized in place.
//
// The first pass collects the names of internally packed parts (PCK
// records). Parts declared inside the file are not external files, so
// a FIL record naming one should arguably be left alone; the current
// behavior normalizes every FIL record regardless, matching the
// established output of the tool. Known limitation: a part name that
// happens to look like an external path gets rewritten too.
func RewriteMesh(rules normalizer.Rules, lines []string) []string {
	_ = collectPartNames(lines)

	out := make([]string, len(lines))
	copy(out, lines)

	for row, line := range lines {
		if strings.HasPrefix(line, "FIL") {
			out[row] = "FIL " + rules.Normalize(tail(line, 4))
		}
	}

	return out
}

// collectPartNames extracts the part names declared by PCK records.
// A PCK record is "PCK <name> <size>" where the name itself may
// contain spaces, so the name is taken as everything between the
// keyword and the trailing size field rather than a single
// whitespace token.
func collectPartNames(lines []string) map[string]bool {
	names := make(map[string]bool)

	for _, line := range lines {
		if !strings.HasPrefix(line, "PCK") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > 2 {
			end := len(line) - len(parts[len(parts)-1]) - 1
			if end > 4 {
				names[line[4:end]] = true
			}
		} else {
			names[parts[0]] = true
		}
	}

	return names
}
