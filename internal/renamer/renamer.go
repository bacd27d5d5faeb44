// Package renamer handles renaming addon entries to their canonical
// on-disk names.
package renamer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenameErrorType represents the type of rename error.
type RenameErrorType string

const (
	// SourceNotFound indicates the entry disappeared before renaming.
	SourceNotFound RenameErrorType = "SOURCE_NOT_FOUND"
	// TargetExists indicates a different entry already has the canonical name.
	TargetExists RenameErrorType = "TARGET_EXISTS"
	// PermissionDenied indicates insufficient permissions for the rename.
	PermissionDenied RenameErrorType = "PERMISSION_DENIED"
	// RenameFailed covers any other OS-level rename failure.
	RenameFailed RenameErrorType = "RENAME_FAILED"
)

// RenameError represents an error that occurred while renaming an entry.
type RenameError struct {
	Type RenameErrorType
	Path string
	Err  error
}

func (e *RenameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// Result describes the outcome of renaming one entry.
type Result struct {
	OldPath string
	NewPath string
	Renamed bool // false when the entry already had its canonical name
}

// CanonicalName returns the on-disk name an entry must have: all
// lowercase, with every space replaced by an underscore.
func CanonicalName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// FileExists reports whether an entry exists at the given path.
func FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Rename renames the entry at path to its canonical name within the
// same directory. When the name is already canonical, nothing is done
// and the result reports Renamed false.
//
// A different entry already holding the canonical name is reported as
// a TargetExists error and the source keeps its original name; its
// already-rewritten internal references will point at the other
// entry, which is the accepted limitation of in-place conversion.
func Rename(path string) (*Result, error) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	canonical := CanonicalName(name)

	if canonical == name {
		return &Result{OldPath: path, NewPath: path, Renamed: false}, nil
	}

	newPath := filepath.Join(dir, canonical)

	srcInfo, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &RenameError{Type: SourceNotFound, Path: path, Err: err}
		}
		return nil, &RenameError{Type: RenameFailed, Path: path, Err: err}
	}

	// On a case-insensitive filesystem the target resolves to the
	// source itself; that rename is a pure case change and is fine.
	if dstInfo, err := os.Lstat(newPath); err == nil {
		if !os.SameFile(srcInfo, dstInfo) {
			return nil, &RenameError{Type: TargetExists, Path: newPath}
		}
	}

	if err := os.Rename(path, newPath); err != nil {
		if os.IsPermission(err) {
			return nil, &RenameError{Type: PermissionDenied, Path: path, Err: err}
		}
		return nil, &RenameError{Type: RenameFailed, Path: path, Err: err}
	}

	return &Result{OldPath: path, NewPath: newPath, Renamed: true}, nil
}
