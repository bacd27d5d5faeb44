// Package normalizer handles path canonicalization for addonlinux.
package normalizer

import "strings"

// Rules holds the fixed vocabularies that drive space disambiguation.
// The zero value is not useful; obtain one from DefaultRules or from
// configuration. Rules are a value type so the normalizer stays pure.
type Rules struct {
	// Extensions are file extensions (without the dot) that may
	// legitimately be followed by a space inside a path field.
	Extensions []string
	// Locations are top-level addon directory names that may
	// legitimately follow a space inside a path field.
	Locations []string
}

// DefaultRules returns the extension and location vocabularies used by
// the simulator's addon formats.
func DefaultRules() Rules {
	return Rules{
		Extensions: []string{"srf", "dnm", "acp", "dat", "fld", "stp", "yfs"},
		Locations:  []string{"user", "aircraft", "ground", "scenery"},
	}
}

// Normalize converts a raw path reference into its canonical form:
// lowercase, forward slashes, and every embedded space either kept
// (when it follows a known extension or precedes a known location
// name) or replaced with an underscore.
//
// A repair pass then undoes underscore substitutions that glued an
// extension to a following token: "<ext>_" becomes "<ext> ", and
// "<ext>_<location>" becomes "<ext> <location>".
//
// Normalize never fails; input that does not look like a path simply
// passes through the same transformations.
func (r Rules) Normalize(path string) string {
	p := strings.ToLower(path)
	p = strings.ReplaceAll(p, "\\", "/")

	if strings.Contains(p, " ") {
		out := []byte(p)
		for idx := 0; idx < len(p); idx++ {
			if p[idx] != ' ' {
				continue
			}
			if !r.validSpace(p, idx) {
				out[idx] = '_'
			}
		}
		p = string(out)
	}

	// Repair: the substitution above (or an earlier run over the same
	// data) may have joined an extension to the next token.
	for _, ext := range r.Extensions {
		p = strings.ReplaceAll(p, ext+"_", ext+" ")
	}
	for _, loc := range r.Locations {
		if !strings.Contains(p, "_"+loc) {
			continue
		}
		for _, ext := range r.Extensions {
			p = strings.ReplaceAll(p, ext+"_"+loc, ext+" "+loc)
		}
	}

	return p
}

// validSpace reports whether the space at index idx of p separates
// tokens that belong apart: the text before it ends with a known
// extension, or the text after it starts with a known location.
// Validity is judged against the original string, before any
// substitutions are applied.
func (r Rules) validSpace(p string, idx int) bool {
	if idx > 3 {
		for _, ext := range r.Extensions {
			if strings.HasSuffix(p[:idx], ext) {
				return true
			}
		}
	}
	for _, loc := range r.Locations {
		if strings.HasPrefix(p[idx+1:], loc) {
			return true
		}
	}
	return false
}
