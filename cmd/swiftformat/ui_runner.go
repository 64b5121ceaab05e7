package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"swiftformat/internal/driver"
	"swiftformat/internal/ui"
)

type formatOutcome struct {
	results []driver.FileResult
	err     error
}

// runFormatWithUI runs FormatPaths while a Bubble Tea program renders its
// progress events.
func runFormatWithUI(ctx context.Context, title string, paths []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		next := opts.Sink
		opts.Sink = func(ev driver.Event) {
			events <- ev
			next.Emit(ev)
		}
		res, err := driver.FormatPaths(ctx, paths, opts)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// Keep the workers unblocked once nobody renders.
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
