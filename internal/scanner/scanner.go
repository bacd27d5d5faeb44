// Package scanner handles directory traversal for addonlinux.
package scanner

import (
	"errors"
	"os"
	"path/filepath"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the directory does not exist.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
	// SymlinkError indicates a symlink was encountered with "error" policy.
	SymlinkError ScanErrorType = "SYMLINK_ERROR"
)

// Symlink policy constants
const (
	SymlinkPolicyFollow = "follow"
	SymlinkPolicySkip   = "skip"
	SymlinkPolicyError  = "error"
)

// ScanError represents an error that occurred during directory traversal.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ScanOptions configures traversal behavior.
type ScanOptions struct {
	SymlinkPolicy string // "follow", "skip", or "error"
}

// DefaultScanOptions returns the default scan options.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		SymlinkPolicy: SymlinkPolicySkip,
	}
}

// Entry represents one directory entry found during traversal.
type Entry struct {
	Name  string // entry name only
	Path  string // full path including the root
	IsDir bool
}

// Walk enumerates every entry under root in bottom-up order: all of a
// directory's descendants appear before the directory itself. Renaming
// entries in this order never invalidates the path of a later entry.
// The root itself is not included.
func Walk(root string) ([]Entry, error) {
	return WalkWithOptions(root, DefaultScanOptions())
}

// WalkWithOptions enumerates entries bottom-up with configurable options.
func WalkWithOptions(root string, opts ScanOptions) ([]Entry, error) {
	info, err := os.Lstat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ScanError{Type: DirectoryNotFound, Path: root, Err: err}
		}
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: root, Err: err}
		}
		return nil, err
	}

	// Handle a symlinked root
	if info.Mode()&os.ModeSymlink != 0 {
		switch opts.SymlinkPolicy {
		case SymlinkPolicyError:
			return nil, &ScanError{
				Type: SymlinkError,
				Path: root,
				Err:  errors.New("symlink encountered with error policy"),
			}
		case SymlinkPolicySkip:
			return []Entry{}, nil
		case SymlinkPolicyFollow:
			info, err = os.Stat(root)
			if err != nil {
				return nil, err
			}
		}
	}

	if !info.IsDir() {
		return nil, &ScanError{
			Type: DirectoryNotFound,
			Path: root,
			Err:  errors.New("path is not a directory"),
		}
	}

	return walkDirectory(root, opts)
}

// Files enumerates all regular files under root, deepest first, using
// the given options. It is the enumeration used by the rewrite pass.
func Files(root string, opts ScanOptions) ([]Entry, error) {
	entries, err := WalkWithOptions(root, opts)
	if err != nil {
		return nil, err
	}

	var files []Entry
	for _, entry := range entries {
		if !entry.IsDir {
			files = append(files, entry)
		}
	}
	return files, nil
}

// walkDirectory recursively collects entries in post-order: each
// subdirectory's contents precede the subdirectory entry itself.
func walkDirectory(directory string, opts ScanOptions) ([]Entry, error) {
	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: directory, Err: err}
		}
		return nil, err
	}

	var entries []Entry
	for _, de := range dirEntries {
		fullPath := filepath.Join(directory, de.Name())

		info, err := os.Lstat(fullPath)
		if err != nil {
			continue // Skip entries we can't stat
		}

		if info.Mode()&os.ModeSymlink != 0 {
			switch opts.SymlinkPolicy {
			case SymlinkPolicyError:
				return nil, &ScanError{
					Type: SymlinkError,
					Path: fullPath,
					Err:  errors.New("symlink encountered with error policy"),
				}
			case SymlinkPolicySkip:
				continue
			case SymlinkPolicyFollow:
				info, err = os.Stat(fullPath)
				if err != nil {
					continue // Skip broken symlinks
				}
			}
		}

		if info.IsDir() {
			subEntries, err := walkDirectory(fullPath, opts)
			if err != nil {
				return nil, err
			}
			entries = append(entries, subEntries...)
		}

		entries = append(entries, Entry{
			Name:  de.Name(),
			Path:  fullPath,
			IsDir: info.IsDir(),
		})
	}

	return entries, nil
}
