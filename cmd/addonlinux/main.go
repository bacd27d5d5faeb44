// Package main provides the CLI entry point for addonlinux.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"addonlinux/internal/audit"
	"addonlinux/internal/config"
	"addonlinux/internal/orchestrator"
	"addonlinux/internal/output"
	"addonlinux/internal/prompt"
	"addonlinux/internal/watcher"
)

const version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: addonlinux [flags] [directory]\n\n")
		fmt.Fprintf(os.Stderr, "Converts a YSFlight addon tree for case-sensitive filesystems:\n")
		fmt.Fprintf(os.Stderr, "renames every file and directory to lowercase and rewrites the\n")
		fmt.Fprintf(os.Stderr, "path references inside .dat, .dnm, .lst, .fld and .acp files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		pflag.PrintDefaults()
	}

	dryRunFlag := pflag.BoolP("dry-run", "n", false, "Show planned renames and rewrites without touching the tree")
	watchFlag := pflag.BoolP("watch", "w", false, "Keep running and convert new entries as they are dropped in")
	undoFlag := pflag.BoolP("undo", "u", false, "Revert the renames of the most recent run")
	yesFlag := pflag.BoolP("yes", "y", false, "Skip the confirmation prompt")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Report every rename and rewrite")
	configFlag := pflag.StringP("config", "c", "", "Path to a JSON configuration file")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	pflag.Parse()

	if *versionFlag {
		fmt.Printf("addonlinux %s\n", version)
		return 0
	}

	opts := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		opts = loaded
	}
	if pflag.NArg() > 0 {
		opts.Root = pflag.Arg(0)
	}
	opts.Verbose = *verboseFlag
	opts.DryRun = *dryRunFlag

	info, err := os.Stat(opts.Root)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", opts.Root)
		return 1
	}

	outConfig := output.DefaultConfig()
	outConfig.Verbose = opts.Verbose
	out := output.New(outConfig)

	orch := orchestrator.New(opts, out)

	switch {
	case *undoFlag:
		return runUndo(orch, out)
	case *dryRunFlag:
		return runPreview(orch, out)
	case *watchFlag:
		return runWatch(orch, opts, out)
	default:
		if !*yesFlag && prompt.IsInteractive() {
			confirmer := prompt.NewConfirmer(os.Stdin, os.Stdout)
			question := fmt.Sprintf("Convert %s in place? Files will be renamed.", opts.Root)
			ok, err := confirmer.Confirm(question)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			if !ok {
				out.Info("aborted")
				return 0
			}
		}
		return runConvert(orch, out)
	}
}

func runConvert(orch *orchestrator.Orchestrator, out *output.Output) int {
	out.Banner(version)

	summary, err := orch.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out.Info("%s", summary)
	if summary.HasErrors() {
		return 1
	}
	return 0
}

func runPreview(orch *orchestrator.Orchestrator, out *output.Output) int {
	preview, err := orch.Preview()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	for _, rename := range preview.Renames {
		out.Info("would rename %s -> %s", rename.OldPath, rename.NewName)
	}
	for _, file := range preview.Rewrites {
		out.Info("would rewrite %s", file)
	}
	for _, collision := range preview.Collisions {
		out.Error("warning: name collision at %s", collision)
	}

	out.Info("%d renames, %d rewrites planned", len(preview.Renames), len(preview.Rewrites))
	if len(preview.Collisions) > 0 {
		return 1
	}
	return 0
}

func runUndo(orch *orchestrator.Orchestrator, out *output.Output) int {
	result, err := audit.UndoLastRun(orch.AuditDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out.Info("run %s: reverted %d renames, %d conflicts", result.RunID, result.Reverted, result.Conflicts)
	for _, undoErr := range result.Errors {
		out.Error("undo: %v", undoErr)
	}
	if len(result.Errors) > 0 {
		return 1
	}
	return 0
}

func runWatch(orch *orchestrator.Orchestrator, opts config.Options, out *output.Output) int {
	out.Banner(version)

	// Bring the tree up to date before watching for new drops.
	summary, err := orch.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	out.Info("%s", summary)

	writer, err := audit.NewWriter(orch.AuditDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer writer.Close()
	if _, err := writer.BeginRun(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	watchConfig := watcher.DefaultConfig()
	watchConfig.DebounceSeconds = opts.DebounceSeconds
	if len(opts.IgnorePatterns) > 0 {
		watchConfig.IgnorePatterns = opts.IgnorePatterns
	}

	w := watcher.New(watchConfig, func(path string) error {
		out.Verbose("converting %s", path)
		return orch.ConvertEntry(path, writer)
	})
	if err := w.Start([]string{opts.Root}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out.Info("watching %s, press Ctrl-C to stop", opts.Root)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	watchSummary := w.Stop()
	if err := writer.EndRun(); err != nil {
		out.Error("audit: %v", err)
	}

	out.Info("converted %d entries, skipped %d, %d errors in %v",
		watchSummary.EntriesConverted, watchSummary.EntriesSkipped,
		watchSummary.Errors, watchSummary.Duration)
	if watchSummary.Errors > 0 {
		return 1
	}
	return 0
}
