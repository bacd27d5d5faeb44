package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fastConfig keeps the debounce and stability windows short enough
// for tests.
func fastConfig() *Config {
	return &Config{
		DebounceSeconds:   0,
		StableThresholdMs: 50,
		IgnorePatterns:    DefaultIgnorePatterns(),
	}
}

// collector records handler invocations.
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) handle(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, path)
	return nil
}

func (c *collector) seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcherConvertsNewFile(t *testing.T) {
	dir := t.TempDir()
	var c collector

	w := New(fastConfig(), c.handle)
	if err := w.Start([]string{dir}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "New Plane.dat")
	if err := os.WriteFile(path, []byte("IDENTIFY X\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if !waitFor(t, 5*time.Second, func() bool { return len(c.seen()) == 1 }) {
		t.Fatalf("handler calls = %v, want 1", c.seen())
	}
	if got := c.seen()[0]; filepath.Base(got) != "New Plane.dat" {
		t.Errorf("handler got %q", got)
	}
}

func TestWatcherConvertsNewDirectory(t *testing.T) {
	dir := t.TempDir()
	var c collector

	w := New(fastConfig(), c.handle)
	if err := w.Start([]string{dir}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	pack := filepath.Join(dir, "Extracted Pack")
	if err := os.Mkdir(pack, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	if !waitFor(t, 5*time.Second, func() bool { return len(c.seen()) >= 1 }) {
		t.Fatalf("directory creation never reached the handler")
	}
}

func TestWatcherIgnoresTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	var c collector

	w := New(fastConfig(), c.handle)
	if err := w.Start([]string{dir}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "pack.zip.crdownload"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Give the event time to arrive before checking nothing happened.
	time.Sleep(500 * time.Millisecond)
	summary := w.Stop()

	if len(c.seen()) != 0 {
		t.Errorf("handler called for ignored file: %v", c.seen())
	}
	if summary.EntriesSkipped == 0 {
		t.Error("ignored file not counted as skipped")
	}
}

func TestWatcherCountsHandlerErrors(t *testing.T) {
	dir := t.TempDir()

	w := New(fastConfig(), func(path string) error {
		return os.ErrPermission
	})
	if err := w.Start([]string{dir}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.dat"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var summary *Summary
	ok := waitFor(t, 5*time.Second, func() bool {
		// Stats are only visible through Stop, so poll by peeking.
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.errors == 1
	})
	summary = w.Stop()
	if !ok {
		t.Fatalf("handler error not counted: %+v", summary)
	}
	if summary.Errors != 1 || summary.EntriesConverted != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestWatcherStopReportsDuration(t *testing.T) {
	dir := t.TempDir()
	w := New(nil, nil)
	if err := w.Start([]string{dir}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !w.IsRunning() {
		t.Error("IsRunning false after Start")
	}

	time.Sleep(50 * time.Millisecond)
	summary := w.Stop()
	if summary.Duration <= 0 {
		t.Errorf("duration = %v", summary.Duration)
	}
	if w.IsRunning() {
		t.Error("IsRunning true after Stop")
	}
}

func TestWatcherStartMissingDirectory(t *testing.T) {
	w := New(fastConfig(), nil)
	if err := w.Start([]string{"/nonexistent/addon/drop"}); err == nil {
		w.Stop()
		t.Fatal("Start succeeded on missing directory")
	}
}
