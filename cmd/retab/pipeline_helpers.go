package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"retab/internal/config"
	"retab/internal/diag"
	"retab/internal/diagfmt"
	"retab/internal/diffview"
	"retab/internal/driver"
	"retab/internal/indent"
	"retab/internal/source"
	"retab/internal/version"
)

// addRunFlags вешает общие флаги конвейерных команд.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "report files that would change, without rewriting")
	cmd.Flags().Bool("stdout", false, "print rewritten code to stdout instead of rewriting files")
	cmd.Flags().Bool("diff", false, "show a unified diff of the changes")
	cmd.Flags().String("format", "text", "diagnostics output format (text|json|sarif)")
	cmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
}

type runFlags struct {
	check   bool
	stdout  bool
	diff    bool
	format  string
	ui      uiMode
	quiet   bool
	timings bool
	maxDiag int
	jobs    int
	noCache bool
}

func readRunFlags(cmd *cobra.Command) (runFlags, error) {
	var f runFlags
	var err error
	if f.check, err = cmd.Flags().GetBool("check"); err != nil {
		return f, err
	}
	if f.stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return f, err
	}
	if f.diff, err = cmd.Flags().GetBool("diff"); err != nil {
		return f, err
	}
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = parseUIMode(uiValue); err != nil {
		return f, err
	}
	root := cmd.Root().PersistentFlags()
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, err
	}
	if f.maxDiag, err = root.GetInt("max-diagnostics"); err != nil {
		return f, err
	}
	if f.jobs, err = root.GetInt("jobs"); err != nil {
		return f, err
	}
	if f.noCache, err = root.GetBool("no-cache"); err != nil {
		return f, err
	}

	if f.stdout && f.check {
		return f, fmt.Errorf("--stdout cannot be used with --check")
	}
	switch f.format {
	case "text", "json", "sarif":
	default:
		return f, fmt.Errorf("unsupported output format %q", f.format)
	}
	if f.stdout && f.format != "text" {
		return f, fmt.Errorf("--stdout is only supported with text output")
	}
	return f, nil
}

// runPipeline — общий исполнитель команд indent/fmt/imports/refactor.
func runPipeline(cmd *cobra.Command, args []string, passes driver.Passes, refactors driver.RefactorOps) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = false

	flags, err := readRunFlags(cmd)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !flags.noCache && !flags.stdout {
		// без кэша работаем дальше, это не фатально
		cache, _ = driver.OpenDiskCache("retab")
	}

	var hasErrors, hasChanges bool
	// По паре bag/fileset на каждый аргумент: Span-ы резолвятся только в
	// своём FileSet.
	sources := make([]diagfmt.Source, 0, len(args))

	for _, path := range args {
		settings, err := config.Discover(path)
		if err != nil {
			return err
		}
		opts := driver.Options{
			Settings:       settings,
			Passes:         passes,
			Refactors:      refactors,
			MaxDiagnostics: flags.maxDiag,
			Jobs:           flags.jobs,
			Cache:          cache,
			Timings:        flags.timings,
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		var fs *source.FileSet
		var results []*driver.FileResult
		if info.IsDir() {
			fs, results, err = runDir(cmd, path, opts, flags)
			if err != nil {
				return err
			}
		} else {
			fs = source.NewFileSet()
			id, loadErr := fs.Load(path)
			if loadErr != nil {
				return fmt.Errorf("%s: %w", path, loadErr)
			}
			results = []*driver.FileResult{driver.ProcessFile(fs, id, opts)}
		}

		argBag := diag.NewBag(flags.maxDiag)
		for _, res := range results {
			if err := handleResult(fs, res, flags); err != nil {
				return err
			}
			if res.Status == indent.StatusRejected || res.Bag.HasErrors() {
				hasErrors = true
			}
			if res.Changed {
				hasChanges = true
			}
			if flags.format != "text" {
				res.Bag.Sort()
				argBag.Merge(res.Bag)
			}
		}
		sources = append(sources, diagfmt.Source{Bag: argBag, Files: fs})
	}

	switch flags.format {
	case "json":
		if err := diagfmt.JSONAll(os.Stdout, sources, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	case "sarif":
		if err := diagfmt.SarifAll(os.Stdout, sources, diagfmt.SarifRunMeta{
			ToolName:    "retab",
			ToolVersion: version.Version,
		}); err != nil {
			return err
		}
	}

	if hasErrors {
		return fmt.Errorf("%s: some files could not be processed", cmd.Name())
	}
	if flags.check && hasChanges {
		return fmt.Errorf("%s: changes required", cmd.Name())
	}
	return nil
}

// handleResult пишет файл/стандартный вывод и печатает диагностику одного
// результата.
func handleResult(fs *source.FileSet, res *driver.FileResult, flags runFlags) error {
	if res.Status == indent.StatusRejected {
		fmt.Fprintf(os.Stderr, "%s: rejected: %s\n", res.Path, res.RejectReason)
	}
	if res.Bag.HasErrors() && res.Status != indent.StatusRejected {
		// ошибки загрузки и подобное
		printDiagnostics(fs, res, flags)
		return nil
	}

	if flags.format == "text" && !flags.quiet {
		printDiagnostics(fs, res, flags)
	}

	if res.Output == nil {
		return nil
	}

	if flags.diff && res.Changed {
		file, ok := fs.GetByPath(res.Path)
		if ok {
			fmt.Print(diffview.Unified(res.Path, file.Content, res.Output))
		}
	}

	switch {
	case flags.stdout:
		_, _ = os.Stdout.Write(res.Output)
	case flags.check:
		if res.Changed && !flags.quiet {
			fmt.Println(res.Path)
		}
	case res.Changed:
		if err := rewriteFile(res.Path, res.Output); err != nil {
			return err
		}
		if !flags.quiet {
			fmt.Printf("rewrote %s (%s)\n", res.Path, diffview.Stat(originalContent(fs, res), res.Output))
		}
	}

	if flags.timings && res.Timing != nil {
		fmt.Fprintf(os.Stderr, "%s: total %.2f ms\n", res.Path, res.Timing.TotalMS)
		for _, p := range res.Timing.Phases {
			fmt.Fprintf(os.Stderr, "  %-10s %7.2f ms", p.Name, p.DurationMS)
			if p.Note != "" {
				fmt.Fprintf(os.Stderr, "  // %s", p.Note)
			}
			fmt.Fprintln(os.Stderr)
		}
	}
	return nil
}

func printDiagnostics(fs *source.FileSet, res *driver.FileResult, flags runFlags) {
	if res.Bag.Len() == 0 {
		return
	}
	res.Bag.Sort()
	diagfmt.Pretty(os.Stderr, res.Bag, fs, diagfmt.PrettyOpts{
		Color:      true,
		ShowNotes:  true,
		ShowSource: true,
		PathMode:   diagfmt.PathModeAuto,
	})
}

func originalContent(fs *source.FileSet, res *driver.FileResult) []byte {
	if file, ok := fs.GetByPath(res.Path); ok {
		return file.Content
	}
	return nil
}

// rewriteFile сохраняет права существующего файла.
func rewriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, content, mode)
}

// runDir запускает обработку директории, с TUI-прогрессом когда уместно.
func runDir(cmd *cobra.Command, dir string, opts driver.Options, flags runFlags) (*source.FileSet, []*driver.FileResult, error) {
	useTUI := flags.ui.enabled() && !flags.stdout && flags.format == "text"
	if !useTUI {
		return driver.ProcessDir(cmd.Context(), dir, opts)
	}
	return runDirWithUI(cmd, dir, opts)
}
