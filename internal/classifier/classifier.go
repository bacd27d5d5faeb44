// Package classifier maps addon files to their record format for addonlinux.
package classifier

import (
	"path/filepath"
	"strings"
)

// FileKind identifies which rewriter handles a file.
type FileKind string

const (
	// KindModel is an aircraft/object definition file (.dat).
	KindModel FileKind = "MODEL"
	// KindMesh is a geometry definition file (.dnm).
	KindMesh FileKind = "MESH"
	// KindList is an addon list file (.lst).
	KindList FileKind = "LIST"
	// KindField is a terrain/scenery file (.fld).
	KindField FileKind = "FIELD"
	// KindCarrier is a carrier property file (.acp).
	KindCarrier FileKind = "CARRIER"
	// KindUnknown is any file addonlinux leaves untouched.
	KindUnknown FileKind = "UNKNOWN"
)

// Classify determines the file kind from the filename's extension.
// Matching is case-insensitive so files are recognized before and
// after the rename pass.
func Classify(filename string) FileKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".dat":
		return KindModel
	case ".dnm":
		return KindMesh
	case ".lst":
		return KindList
	case ".fld":
		return KindField
	case ".acp":
		return KindCarrier
	default:
		return KindUnknown
	}
}

// IsConvertible reports whether the file's contents are rewritten by
// one of the line rewriters.
func IsConvertible(filename string) bool {
	return Classify(filename) != KindUnknown
}

// IsSceneryList reports whether a list file carries scenery entries,
// in which case the first field of each line is a map name rather
// than a path. Scenery lists are recognized by their base name.
func IsSceneryList(filename string) bool {
	return strings.HasPrefix(strings.ToLower(filepath.Base(filename)), "sce")
}
