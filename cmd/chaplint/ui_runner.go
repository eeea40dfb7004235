package main

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"chaplint/internal/detect"
	"chaplint/internal/driver"
	"chaplint/internal/ui"
)

type checkOutcome struct {
	results []driver.FileResult
	err     error
}

// checkDirWithProgress runs the batch behind a live progress view. The
// driver closes the event channel when the batch finishes, which in turn
// ends the Bubble Tea program.
func checkDirWithProgress(cmd *cobra.Command, det *detect.Detector, dir string, opts driver.Options) ([]driver.FileResult, error) {
	files, err := driver.ListChapterFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		results, err := driver.CheckDir(cmd.Context(), det, dir, optsCopy)
		outcomeCh <- checkOutcome{results: results, err: err}
	}()

	model := ui.NewProgressModel("checking "+filepath.Base(dir), files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
