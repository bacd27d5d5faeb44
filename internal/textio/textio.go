// Package textio reads and writes the line-oriented text files that
// make up an addon.
package textio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DecodeError indicates a file is not valid UTF-8 and was left
// unmodified.
type DecodeError struct {
	Path string // path relative to the run root when available
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode %s as UTF-8", e.Path)
}

// ReadLines reads the whole file and returns its lines with
// terminators stripped. Both "\n" and "\r\n" endings are accepted;
// a trailing terminator on the last line does not produce an empty
// trailing element. Invalid UTF-8 content yields a DecodeError and
// no lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(data) {
		return nil, &DecodeError{Path: path}
	}

	text := string(data)
	if text == "" {
		return nil, nil
	}
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// WriteLines writes each line followed by a single newline, first to
// a temporary file beside the target and then atomically renaming it
// over the original, so a crash mid-write never leaves a truncated
// file.
func WriteLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
