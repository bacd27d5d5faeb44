// Package prompt handles interactive confirmation before a conversion
// run mutates an addon tree.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IsInteractive returns true if the terminal supports interactive input.
// It checks if stdin is a TTY by examining the file mode. Returns false
// if stdin is not a terminal (e.g., piped input, redirected from file).
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Confirmer asks yes/no questions on a terminal.
type Confirmer struct {
	reader io.Reader
	writer io.Writer
}

// NewConfirmer creates a Confirmer with the given reader and writer.
// Use os.Stdin and os.Stdout for normal operation, or buffers for testing.
func NewConfirmer(reader io.Reader, writer io.Writer) *Confirmer {
	return &Confirmer{
		reader: reader,
		writer: writer,
	}
}

// Confirm asks the question and reads one line of input. Only an
// explicit yes proceeds; anything else, including EOF, declines. The
// conversion renames files in place, so the safe default is no.
func (c *Confirmer) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.writer, "%s (y)es, (n)o: ", question)

	scanner := bufio.NewScanner(c.reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("error reading input: %w", err)
		}
		return false, nil
	}

	input := strings.TrimSpace(strings.ToLower(scanner.Text()))

	switch input {
	case "y", "yes":
		return true, nil
	case "n", "no", "":
		return false, nil
	default:
		fmt.Fprintf(c.writer, "Invalid input '%s', treating as no.\n", input)
		return false, nil
	}
}
