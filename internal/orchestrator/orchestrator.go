// Package orchestrator coordinates the addon conversion workflow for
// addonlinux.
package orchestrator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"addonlinux/internal/audit"
	"addonlinux/internal/classifier"
	"addonlinux/internal/config"
	"addonlinux/internal/normalizer"
	"addonlinux/internal/output"
	"addonlinux/internal/renamer"
	"addonlinux/internal/rewriter"
	"addonlinux/internal/scanner"
	"addonlinux/internal/textio"
)

// Orchestrator runs the two conversion passes over an addon tree.
type Orchestrator struct {
	opts  config.Options
	rules normalizer.Rules
	out   *output.Output
}

// New creates an Orchestrator for the given options.
func New(opts config.Options, out *output.Output) *Orchestrator {
	return &Orchestrator{
		opts:  opts,
		rules: opts.Rules(),
		out:   out,
	}
}

// AuditDir returns the resolved audit log directory.
func (o *Orchestrator) AuditDir() string {
	dir := o.opts.AuditDirectory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(o.opts.Root, dir)
	}
	return dir
}

// Run converts the tree under the configured root: first every entry
// is renamed to its canonical lowercase name (bottom-up, so parents
// are renamed after their children), then every recognized file has
// its internal path references rewritten.
//
// No per-entry failure aborts the run; renames that fail are logged
// and the entry keeps its name, files that cannot be decoded are
// skipped unmodified.
func (o *Orchestrator) Run() (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	writer, err := audit.NewWriter(o.AuditDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer writer.Close()

	if _, err := writer.BeginRun(); err != nil {
		return nil, fmt.Errorf("failed to start audit run: %w", err)
	}

	// Pass 1: rename everything to canonical names.
	entries, err := scanner.Walk(o.opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", o.opts.Root, err)
	}

	for _, entry := range entries {
		result, err := renamer.Rename(entry.Path)
		if err != nil {
			summary.RenameErrors = append(summary.RenameErrors, err)
			o.out.Error("cannot rename %s: %v", entry.Name, err)
			_ = writer.Write(audit.Event{
				Type:    audit.EventRenameFailed,
				OldPath: entry.Path,
				Detail:  err.Error(),
			})
			continue
		}
		if result.Renamed {
			summary.EntriesRenamed++
			o.out.Verbose("renamed %s -> %s", result.OldPath, result.NewPath)
			_ = writer.Write(audit.Event{
				Type:    audit.EventRename,
				OldPath: result.OldPath,
				NewPath: result.NewPath,
			})
		}
	}

	// Pass 2: rewrite path references inside recognized files.
	files, err := scanner.Files(o.opts.Root, scanner.DefaultScanOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", o.opts.Root, err)
	}

	var targets []scanner.Entry
	for _, file := range files {
		if classifier.IsConvertible(file.Name) {
			targets = append(targets, file)
		}
	}

	o.out.StartProgress(len(targets))
	for i, file := range targets {
		o.out.UpdateProgress(i+1, "")
		o.rewriteFile(file.Path, writer, summary)
	}
	o.out.EndProgress()

	if err := writer.EndRun(); err != nil {
		return summary, err
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// rewriteFile routes one file's lines through the rewriter for its
// kind and writes the result back. Failures are recorded on the
// summary; they never abort the batch.
func (o *Orchestrator) rewriteFile(path string, writer *audit.Writer, summary *Summary) {
	lines, err := textio.ReadLines(path)
	if err != nil {
		var decodeErr *textio.DecodeError
		if errors.As(err, &decodeErr) {
			summary.FilesSkipped++
			o.out.DecodeSkip(o.relPath(path))
			o.logEvent(writer, audit.Event{
				Type:    audit.EventSkipDecode,
				OldPath: path,
				Detail:  err.Error(),
			})
			return
		}
		summary.WriteErrors = append(summary.WriteErrors,
			fmt.Errorf("failed to read %s: %w", path, err))
		o.out.Error("cannot read %s: %v", o.relPath(path), err)
		return
	}
	if len(lines) == 0 {
		return
	}

	var rewritten []string
	switch classifier.Classify(path) {
	case classifier.KindModel:
		rewritten = rewriter.RewriteModel(o.rules, lines)
	case classifier.KindMesh:
		rewritten = rewriter.RewriteMesh(o.rules, lines)
	case classifier.KindList:
		var diags []rewriter.Diagnostic
		rewritten, diags = rewriter.RewriteList(o.rules, path, lines)
		for _, d := range diags {
			o.out.Diagnostic(d)
		}
		summary.Diagnostics = append(summary.Diagnostics, diags...)
	case classifier.KindField:
		rewritten = rewriter.RewriteField(o.rules, lines)
	case classifier.KindCarrier:
		rewritten = rewriter.RewriteCarrier(o.rules, lines)
	default:
		return
	}

	if err := textio.WriteLines(path, rewritten); err != nil {
		summary.WriteErrors = append(summary.WriteErrors,
			fmt.Errorf("failed to write %s: %w", path, err))
		o.out.Error("cannot write %s: %v", o.relPath(path), err)
		return
	}

	summary.FilesRewritten++
	o.out.Verbose("rewrote %s", o.relPath(path))
	o.logEvent(writer, audit.Event{Type: audit.EventRewrite, OldPath: path})
}

// ConvertEntry converts a single entry dropped into a watched tree: a
// directory is converted as a subtree, a file is renamed and, when
// recognized, rewritten. Events are appended to writer when non-nil.
func (o *Orchestrator) ConvertEntry(path string, writer *audit.Writer) error {
	info, err := renamer.Rename(path)
	if err != nil {
		return err
	}
	if info.Renamed {
		o.logEvent(writer, audit.Event{
			Type:    audit.EventRename,
			OldPath: info.OldPath,
			NewPath: info.NewPath,
		})
	}
	path = info.NewPath

	summary := &Summary{}
	if isDir(path) {
		entries, err := scanner.Walk(path)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			result, err := renamer.Rename(entry.Path)
			if err != nil {
				summary.RenameErrors = append(summary.RenameErrors, err)
				continue
			}
			if result.Renamed {
				o.logEvent(writer, audit.Event{
					Type:    audit.EventRename,
					OldPath: result.OldPath,
					NewPath: result.NewPath,
				})
			}
		}
		files, err := scanner.Files(path, scanner.DefaultScanOptions())
		if err != nil {
			return err
		}
		for _, file := range files {
			if classifier.IsConvertible(file.Name) {
				o.rewriteFile(file.Path, writer, summary)
			}
		}
	} else if classifier.IsConvertible(path) {
		o.rewriteFile(path, writer, summary)
	}

	if len(summary.RenameErrors) > 0 {
		return summary.RenameErrors[0]
	}
	return nil
}

// logEvent appends an event when an audit writer is present. Watch
// mode may run without one.
func (o *Orchestrator) logEvent(writer *audit.Writer, event audit.Event) {
	if writer != nil {
		_ = writer.Write(event)
	}
}

// isDir reports whether path is an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// relPath renders a path relative to the run root for operator-facing
// messages.
func (o *Orchestrator) relPath(path string) string {
	rel, err := filepath.Rel(o.opts.Root, path)
	if err != nil {
		return path
	}
	return rel
}
