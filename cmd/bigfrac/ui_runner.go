package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bigfrac/internal/batch"
	"bigfrac/internal/ui"
)

type batchOutcome struct {
	results []batch.FileResult
	err     error
}

// runBatchWithUI runs the batch in the background and draws its progress on
// stderr. Quitting the UI early cancels the remaining scripts.
func runBatchWithUI(ctx context.Context, title string, paths []string, opts batch.Options) ([]batch.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		o := opts
		o.Sink = batch.ChannelSink{Ch: events}
		res, err := batch.Run(ctx, paths, o)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// The batch has finished by the time the UI sees the channel close;
	// otherwise the user quit, so stop the workers and drain what is left.
	cancel()
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
