package rewriter

import (
	"testing"

	"addonlinux/internal/normalizer"
)

func TestRewriteMeshFilLines(t *testing.T) {
	rules := normalizer.DefaultRules()

	lines := []string{
		"DYNAMODEL",
		`FIL User\Jet\Body Part.srf`,
		"SRF body",
		"FIL user/jet/canopy.srf",
		"END",
	}
	want := []string{
		"DYNAMODEL",
		"FIL user/jet/body_part.srf",
		"SRF body",
		"FIL user/jet/canopy.srf",
		"END",
	}

	got := RewriteMesh(rules, lines)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// Part names packed inside the file are still rewritten when a FIL
// record names them; the part-name set is collected but not consulted.
func TestRewriteMeshRewritesPackedPartReferences(t *testing.T) {
	rules := normalizer.DefaultRules()

	lines := []string{
		`PCK Gear Door.srf 2048`,
		"FIL Gear Door.srf",
	}

	got := RewriteMesh(rules, lines)
	if got[1] != "FIL gear_door.srf" {
		t.Errorf("FIL line = %q, want %q", got[1], "FIL gear_door.srf")
	}
}

func TestCollectPartNames(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"simple name", "PCK body.srf 1024", "body.srf"},
		{"name with spaces", "PCK gear door.srf 2048", "gear door.srf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := collectPartNames([]string{tt.line})
			if !names[tt.want] {
				t.Errorf("collectPartNames(%q) = %v, want to contain %q", tt.line, names, tt.want)
			}
		})
	}
}

func TestCollectPartNamesIgnoresOtherLines(t *testing.T) {
	names := collectPartNames([]string{"FIL body.srf", "SRF body", ""})
	if len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
}
