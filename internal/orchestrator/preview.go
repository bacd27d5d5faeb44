package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"

	"addonlinux/internal/classifier"
	"addonlinux/internal/renamer"
	"addonlinux/internal/scanner"
)

// PlannedRename is one rename a run would perform.
type PlannedRename struct {
	OldPath string
	NewName string
}

// Preview describes what a run would do without touching the tree.
type Preview struct {
	Renames    []PlannedRename
	Collisions []string // canonical names already taken by another entry
	Rewrites   []string // files whose contents would be rewritten
}

// Preview analyzes the tree under the configured root and reports the
// renames and rewrites a run would perform. Nothing is modified.
func (o *Orchestrator) Preview() (*Preview, error) {
	entries, err := scanner.Walk(o.opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", o.opts.Root, err)
	}

	preview := &Preview{}

	// Track planned names per directory so case-only collisions show
	// up before any rename happens.
	planned := make(map[string]bool)
	for _, entry := range entries {
		canonical := renamer.CanonicalName(entry.Name)
		if canonical == entry.Name {
			continue
		}

		target := joinDir(entry.Path, canonical)
		if planned[target] || occupiedByOther(entry.Path, target) {
			preview.Collisions = append(preview.Collisions, entry.Path)
			continue
		}
		planned[target] = true

		preview.Renames = append(preview.Renames, PlannedRename{
			OldPath: entry.Path,
			NewName: canonical,
		})
	}

	for _, entry := range entries {
		if !entry.IsDir && classifier.IsConvertible(entry.Name) {
			preview.Rewrites = append(preview.Rewrites, entry.Path)
		}
	}

	return preview, nil
}

// joinDir replaces the final element of path with name.
func joinDir(path, name string) string {
	return filepath.Join(filepath.Dir(path), name)
}

// occupiedByOther reports whether target exists and is a different
// entry than path. On a case-insensitive filesystem a pure case
// change resolves to the entry itself, which is not a collision.
func occupiedByOther(path, target string) bool {
	dst, err := os.Lstat(target)
	if err != nil {
		return false
	}
	src, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return !os.SameFile(src, dst)
}
