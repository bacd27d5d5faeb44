package rewriter

import "addonlinux/internal/normalizer"

// carrierPathLines is the number of leading lines of a carrier
// property (.acp) file that hold path fields.
const carrierPathLines = 4

// RewriteCarrier rewrites a carrier property (.acp) file. The format
// is fixed: exactly the first four lines are path fields; everything
// after them is numeric property data and passes through untouched.
func RewriteCarrier(rules normalizer.Rules, lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)

	for i := 0; i < carrierPathLines && i < len(lines); i++ {
		out[i] = rules.Normalize(lines[i])
	}

	return out
}
