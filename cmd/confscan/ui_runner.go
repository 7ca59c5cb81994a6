package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"confscan/internal/driver"
	"confscan/internal/search"
	"confscan/internal/ui"
)

type searchOutcome struct {
	reports []driver.FileReport
	err     error
}

// searchDirWithUI runs driver.SearchDir with a progress board on stdout.
// Прогресс и результаты не смешиваются: доска живёт, пока идёт обход,
// печать результатов остаётся за вызывающим.
func searchDirWithUI(ctx context.Context, title, root string, q search.Query, opts driver.DirOptions) ([]driver.FileReport, error) {
	files, err := driver.ListDumpFiles(root, opts.Walk)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan searchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		reports, err := driver.SearchDir(ctx, root, q, optsCopy)
		outcomeCh <- searchOutcome{reports: reports, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.reports, uiErr
	}
	return outcome.reports, outcome.err
}
