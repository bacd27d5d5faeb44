// Package watcher monitors a directory and converts addon entries as
// they are dropped in.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config contains watch mode settings.
type Config struct {
	DebounceSeconds   int      // Delay before converting a new entry (default: 2)
	StableThresholdMs int      // File size stability threshold in milliseconds (default: 1000)
	IgnorePatterns    []string // Glob patterns to ignore (e.g., "*.tmp", "*.part")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DebounceSeconds:   2,
		StableThresholdMs: 1000,
		IgnorePatterns:    DefaultIgnorePatterns(),
	}
}

// Summary contains stats from the watch session.
type Summary struct {
	EntriesConverted int
	EntriesSkipped   int
	Errors           int
	Duration         time.Duration
}

// EntryHandler converts one dropped entry (a file or an extracted
// addon directory). An error counts against the session but does not
// stop the watch.
type EntryHandler func(path string) error

// Watcher monitors directories for new addon entries.
type Watcher struct {
	config    *Config
	handler   EntryHandler
	fsWatcher *fsnotify.Watcher
	filter    *FileFilter
	debouncer *Debouncer
	stability *StabilityChecker
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time

	mu        sync.Mutex
	converted int
	skipped   int
	errors    int
}

// New creates a Watcher with the given configuration. If config is
// nil, defaults are used. The handler is called for each new entry
// once its contents have settled.
func New(config *Config, handler EntryHandler) *Watcher {
	if config == nil {
		config = DefaultConfig()
	}
	w := &Watcher{
		config:    config,
		handler:   handler,
		filter:    NewFileFilter(config.IgnorePatterns),
		stability: NewStabilityChecker(time.Duration(config.StableThresholdMs) * time.Millisecond),
		done:      make(chan struct{}),
	}
	w.debouncer = NewDebouncer(time.Duration(config.DebounceSeconds)*time.Second, w.convert)
	return w
}

// Start begins watching the specified directories for new entries.
// The watcher runs until Stop is called.
func (w *Watcher) Start(dirs []string) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			w.fsWatcher.Close()
			return err
		}
		if err := w.fsWatcher.Add(absDir); err != nil {
			w.fsWatcher.Close()
			return err
		}
	}

	w.startTime = time.Now()
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop shuts down the watcher and returns a summary of the session.
// Pending debounced entries are discarded.
func (w *Watcher) Stop() *Summary {
	close(w.done)
	w.wg.Wait()
	w.debouncer.CancelAll()

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return &Summary{
		EntriesConverted: w.converted,
		EntriesSkipped:   w.skipped,
		Errors:           w.errors,
		Duration:         time.Since(w.startTime),
	}
}

// processEvents routes fsnotify events into the debouncer. Create
// events cover both fresh downloads and entries moved into a watched
// directory.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.handleEvent(event.Name)
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// handleEvent filters one new entry and schedules it for conversion.
// Rapid events for the same path collapse into a single conversion.
func (w *Watcher) handleEvent(path string) {
	if w.filter.ShouldIgnore(path) {
		w.mu.Lock()
		w.skipped++
		w.mu.Unlock()
		return
	}
	w.debouncer.Add(path)
}

// convert fires after the debounce delay. Regular files must hold a
// steady size first so a download still in flight is not converted
// half-written. Directories (extracted archives) go straight through.
func (w *Watcher) convert(path string) {
	info, err := os.Stat(path)
	if err != nil {
		// Entry vanished between the event and the debounce expiry.
		w.mu.Lock()
		w.skipped++
		w.mu.Unlock()
		return
	}

	if !info.IsDir() {
		if err := w.stability.WaitForStable(path); err != nil {
			w.mu.Lock()
			w.skipped++
			w.mu.Unlock()
			return
		}
	}

	if w.handler == nil {
		return
	}

	err = w.handler(path)
	w.mu.Lock()
	if err != nil {
		w.errors++
	} else {
		w.converted++
	}
	w.mu.Unlock()
}

// IsRunning returns true if the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	select {
	case <-w.done:
		return false
	default:
		return w.fsWatcher != nil
	}
}
