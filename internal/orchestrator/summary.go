package orchestrator

import (
	"fmt"
	"time"

	"addonlinux/internal/rewriter"
)

// Summary represents the overall results of a conversion run.
type Summary struct {
	EntriesRenamed int
	FilesRewritten int
	FilesSkipped   int // decode failures, left unmodified
	RenameErrors   []error
	WriteErrors    []error
	Diagnostics    []rewriter.Diagnostic
	Duration       time.Duration
}

// HasErrors returns true if any entry could not be renamed or any
// file could not be written back.
func (s *Summary) HasErrors() bool {
	return len(s.RenameErrors) > 0 || len(s.WriteErrors) > 0
}

// String returns a one-line summary for the end of a run.
func (s *Summary) String() string {
	return fmt.Sprintf(
		"renamed %d entries, rewrote %d files, skipped %d, %d errors in %v",
		s.EntriesRenamed, s.FilesRewritten, s.FilesSkipped,
		len(s.RenameErrors)+len(s.WriteErrors), s.Duration.Round(time.Millisecond))
}
