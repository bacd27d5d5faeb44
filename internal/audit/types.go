// Package audit provides an append-only event log for addonlinux
// runs. Every rename and rewrite is recorded so a run can be
// inspected afterwards and its renames reversed.
package audit

import "time"

// RunID is a unique identifier for each program execution.
// It uses UUID v4 format: "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx"
type RunID string

// EventType represents the type of audit event.
type EventType string

const (
	// Run lifecycle events
	EventRunStart EventType = "RUN_START"
	EventRunEnd   EventType = "RUN_END"

	// Conversion events
	EventRename       EventType = "RENAME"
	EventRenameFailed EventType = "RENAME_FAILED"
	EventRewrite      EventType = "REWRITE"
	EventSkipDecode   EventType = "SKIP_DECODE"

	// Undo events
	EventUndoRename   EventType = "UNDO_RENAME"
	EventUndoConflict EventType = "UNDO_CONFLICT"
)

// Event is one record of the run log.
type Event struct {
	Timestamp time.Time
	RunID     RunID
	Type      EventType
	// OldPath and NewPath describe a rename; for rewrites and skips
	// only OldPath is set, holding the file's path.
	OldPath string
	NewPath string
	// Detail carries the error text for failure events.
	Detail string
}

// LogFileName is the name of the run log inside the audit directory.
const LogFileName = "addonlinux-audit.jsonl"
