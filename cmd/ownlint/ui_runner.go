package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ownlint/internal/driver"
	"ownlint/internal/ui"
)

type checkOutcome struct {
	results []driver.DocumentResult
	err     error
}

// runCheckDirWithUI runs the directory check behind a live progress screen.
// The driver streams events into the Bubble Tea program; the actual results
// come back over the outcome channel once the workers drain.
func runCheckDirWithUI(ctx context.Context, title, dir string, opts driver.Options) ([]driver.DocumentResult, error) {
	docs, err := driver.ListDocuments(dir)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no declaration documents (*.yaml, *.yml, *.toml) under %s", dir)
	}

	events := make(chan driver.Event, len(docs)*4)
	outcome := make(chan checkOutcome, 1)

	opts.Progress = driver.ChannelSink{Ch: events}

	go func() {
		results, err := driver.CheckDir(ctx, dir, opts)
		close(events)
		outcome <- checkOutcome{results: results, err: err}
	}()

	model := ui.NewProgressModel(title, docs, events)
	prog := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	if _, uiErr := prog.Run(); uiErr != nil {
		// UI failure should not hide the check result; drain the workers first.
		res := <-outcome
		if res.err != nil {
			return nil, res.err
		}
		return res.results, fmt.Errorf("progress ui: %w", uiErr)
	}

	res := <-outcome
	return res.results, res.err
}
