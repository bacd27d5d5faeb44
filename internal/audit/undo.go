package audit

import (
	"fmt"
	"os"
)

// UndoResult summarizes an undo of one run's renames.
type UndoResult struct {
	RunID     RunID
	Reverted  int
	Conflicts int
	Errors    []error
}

// UndoLastRun reverses the renames of the most recent run recorded in
// dir, in reverse order so parent directories regain their original
// names after their children. Rewritten file contents are not
// restored; only names are. Conflicts (the renamed entry is gone, or
// something else now holds the original name) are recorded and
// skipped so the rest of the run can still be reverted.
//
// The undo itself is logged to the same audit log.
func UndoLastRun(dir string) (*UndoResult, error) {
	runID, err := LastRunID(dir)
	if err != nil {
		return nil, err
	}
	return UndoRun(dir, runID)
}

// UndoRun reverses the renames of one recorded run.
func UndoRun(dir string, runID RunID) (*UndoResult, error) {
	events, err := RunEvents(dir, runID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no events recorded for run %s", runID)
	}

	writer, err := NewWriter(dir)
	if err != nil {
		return nil, err
	}
	defer writer.Close()

	if _, err := writer.BeginRun(); err != nil {
		return nil, err
	}

	result := &UndoResult{RunID: runID}

	for i := len(events) - 1; i >= 0; i-- {
		event := events[i]
		if event.Type != EventRename {
			continue
		}

		srcInfo, err := os.Lstat(event.NewPath)
		if err != nil {
			result.Conflicts++
			_ = writer.Write(Event{
				Type:    EventUndoConflict,
				OldPath: event.NewPath,
				NewPath: event.OldPath,
				Detail:  "renamed entry no longer exists",
			})
			continue
		}
		// On a case-insensitive filesystem the original name resolves
		// to the renamed entry itself; that is a pure case change,
		// not a conflict.
		if dstInfo, err := os.Lstat(event.OldPath); err == nil && !os.SameFile(srcInfo, dstInfo) {
			result.Conflicts++
			_ = writer.Write(Event{
				Type:    EventUndoConflict,
				OldPath: event.NewPath,
				NewPath: event.OldPath,
				Detail:  "original name is occupied",
			})
			continue
		}

		if err := os.Rename(event.NewPath, event.OldPath); err != nil {
			result.Errors = append(result.Errors,
				fmt.Errorf("failed to revert %s: %w", event.NewPath, err))
			continue
		}

		result.Reverted++
		_ = writer.Write(Event{
			Type:    EventUndoRename,
			OldPath: event.NewPath,
			NewPath: event.OldPath,
		})
	}

	if err := writer.EndRun(); err != nil {
		return result, err
	}
	return result, nil
}
