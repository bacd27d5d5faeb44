package audit

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoRuns is returned when the log exists but records no completed run.
var ErrNoRuns = errors.New("audit log contains no runs")

// ReadAll reads every event from the run log inside dir, in file order.
func ReadAll(dir string) ([]Event, error) {
	logPath := filepath.Join(dir, LogFileName)
	file, err := os.Open(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	var parseErr error
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if parseErr != nil {
			// A bad line followed by more events is log corruption; a
			// torn final line from an interrupted run is tolerated.
			return nil, parseErr
		}
		var event Event
		if err := event.UnmarshalJSON(line); err != nil {
			parseErr = fmt.Errorf("corrupt audit event at line %d: %w", lineNum, err)
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	return events, nil
}

// LastRunID returns the ID of the most recent run recorded in dir.
func LastRunID(dir string) (RunID, error) {
	events, err := ReadAll(dir)
	if err != nil {
		return "", err
	}

	var last RunID
	for _, event := range events {
		if event.Type == EventRunStart {
			last = event.RunID
		}
	}
	if last == "" {
		return "", ErrNoRuns
	}
	return last, nil
}

// RunEvents returns the events of one run, in file order.
func RunEvents(dir string, runID RunID) ([]Event, error) {
	events, err := ReadAll(dir)
	if err != nil {
		return nil, err
	}

	var run []Event
	for _, event := range events {
		if event.RunID == runID {
			run = append(run, event)
		}
	}
	return run, nil
}
