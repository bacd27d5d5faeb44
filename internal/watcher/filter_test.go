package watcher

import "testing"

func TestShouldIgnoreDefaults(t *testing.T) {
	filter := NewFileFilter(nil)

	tests := []struct {
		path string
		want bool
	}{
		{"/drop/pack.tmp", true},
		{"/drop/pack.dat.tmp31337", true},
		{"/drop/pack.part", true},
		{"/drop/pack.download", true},
		{"/drop/pack.zip.crdownload", true},
		{"/drop/addon pack.zip", true},
		{"/drop/.~lock.f16.dat#", true},
		{"/drop/F16.dat", false},
		{"/drop/Extracted Pack", false},
		{"/drop/scenery.fld", false},
	}

	for _, tt := range tests {
		if got := filter.ShouldIgnore(tt.path); got != tt.want {
			t.Errorf("ShouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestShouldIgnoreCustomPatterns(t *testing.T) {
	filter := NewFileFilter([]string{"*.bak", "skip-*"})

	if !filter.ShouldIgnore("/drop/old.bak") {
		t.Error("*.bak pattern did not match")
	}
	if !filter.ShouldIgnore("/drop/skip-this.dat") {
		t.Error("skip-* pattern did not match")
	}
	// Custom patterns replace the defaults entirely.
	if filter.ShouldIgnore("/drop/pack.tmp") {
		t.Error("default pattern applied alongside custom patterns")
	}
}

func TestShouldIgnoreSuffixPattern(t *testing.T) {
	filter := NewFileFilter([]string{".part"})

	if !filter.ShouldIgnore("/drop/Pack.PART") {
		t.Error("bare extension pattern should match case-insensitively")
	}
	if filter.ShouldIgnore("/drop/participants.dat") {
		t.Error("suffix match leaked into the middle of a name")
	}
}

func TestGetPatternsReturnsCopy(t *testing.T) {
	filter := NewFileFilter([]string{"*.bak"})
	patterns := filter.GetPatterns()
	patterns[0] = "*.changed"

	if filter.GetPatterns()[0] != "*.bak" {
		t.Error("GetPatterns exposed internal slice")
	}
}
