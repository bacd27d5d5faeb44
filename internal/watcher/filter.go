package watcher

import (
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns returns patterns for in-flight downloads and
// archive-extraction leftovers that must never be converted.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp*", // includes the rewriter's own temp files

		"*.part",
		"*.download",
		"*.crdownload", // Chrome partial downloads
		"*.partial",
		"*.zip", // still an archive, not an addon tree
		"*.rar",
		".~*",
	}
}

// FileFilter decides which new entries are skipped.
type FileFilter struct {
	patterns []string
}

// NewFileFilter creates a FileFilter with the given patterns. Empty
// or nil means the defaults.
func NewFileFilter(patterns []string) *FileFilter {
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	return &FileFilter{
		patterns: patterns,
	}
}

// ShouldIgnore checks the base name of path against every pattern.
// Patterns use filepath.Match glob syntax. Bare ".ext" patterns also
// match as a case-insensitive suffix.
func (f *FileFilter) ShouldIgnore(path string) bool {
	filename := filepath.Base(path)

	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, filename); err == nil && matched {
			return true
		}

		if strings.HasPrefix(pattern, ".") && !strings.Contains(pattern, "*") {
			if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(pattern)) {
				return true
			}
		}
	}
	return false
}

// GetPatterns returns a copy of the active ignore patterns.
func (f *FileFilter) GetPatterns() []string {
	result := make([]string, len(f.patterns))
	copy(result, f.patterns)
	return result
}
