package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"retab/internal/driver"
	"retab/internal/source"
	"retab/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []*driver.FileResult
	err     error
}

// runDirWithUI обрабатывает директорию, показывая Bubble Tea прогресс.
func runDirWithUI(cmd *cobra.Command, dir string, opts driver.Options) (*source.FileSet, []*driver.FileResult, error) {
	files, err := driver.ListPyFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		fs, results, err := driver.ProcessDir(cmd.Context(), dir, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(cmd.Name()+" "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// TUI мог выйти раньше конвейера (ctrl-c): дочитываем события до
	// закрытия канала, чтобы обработка не ждала потребителя.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
