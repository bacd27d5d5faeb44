package audit

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Writer appends events to the run log. It is append-only: a failed
// write surfaces immediately rather than silently losing history.
type Writer struct {
	mu         sync.Mutex
	file       *os.File
	writer     *bufio.Writer
	logPath    string
	currentRun RunID
}

// NewWriter opens (or creates) the run log inside dir.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	logPath := filepath.Join(dir, LogFileName)
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	return &Writer{
		file:    file,
		writer:  bufio.NewWriter(file),
		logPath: logPath,
	}, nil
}

// GenerateRunID generates a new UUID v4 format Run ID.
func GenerateRunID() (RunID, error) {
	uuid := make([]byte, 16)
	if _, err := rand.Read(uuid); err != nil {
		return "", fmt.Errorf("failed to generate run ID: %w", err)
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x40 // Version 4
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // RFC 4122 variant

	return RunID(fmt.Sprintf("%x-%x-%x-%x-%x",
		uuid[0:4], uuid[4:6], uuid[6:8], uuid[8:10], uuid[10:16])), nil
}

// BeginRun starts a new run: generates its ID and records RUN_START.
func (w *Writer) BeginRun() (RunID, error) {
	runID, err := GenerateRunID()
	if err != nil {
		return "", err
	}
	w.mu.Lock()
	w.currentRun = runID
	w.mu.Unlock()

	return runID, w.Write(Event{Type: EventRunStart})
}

// EndRun records RUN_END for the current run and flushes the log.
func (w *Writer) EndRun() error {
	if err := w.Write(Event{Type: EventRunEnd}); err != nil {
		return err
	}
	return w.Flush()
}

// Write appends one event. The run ID and timestamp are filled in
// when absent.
func (w *Writer) Write(event Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if event.RunID == "" {
		event.RunID = w.currentRun
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := event.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	return nil
}

// Flush forces buffered events to disk.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush audit log: %w", err)
	}
	return w.file.Sync()
}

// Close flushes and closes the log.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// LogPath returns the path of the log file.
func (w *Writer) LogPath() string {
	return w.logPath
}
