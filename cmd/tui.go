package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tubesync/internal/shared"
	"github.com/desertthunder/tubesync/internal/storage"
	"github.com/desertthunder/tubesync/internal/tasks"
	"github.com/desertthunder/tubesync/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for extraction and restoration.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	gw, err := r.session(ctx)
	if err != nil {
		return err
	}

	root, err := storage.OpenDir(".")
	if err != nil {
		return err
	}
	extractDir, err := root.Sub(r.config.Extract.Subfolder)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(shared.HomePath("tui.log"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	privacy, err := r.privacy("")
	if err != nil {
		return err
	}

	log := tasks.NewEventLog(r.logger)
	opts := tasks.QueueOpts{
		Log:       log,
		Pacer:     tasks.NewPacer(r.pacing(0, false)),
		Describer: r.describer(ctx, false),
		Privacy:   privacy,
	}
	if repo := r.history(); repo != nil {
		opts.Recorder = repo
	}

	model := ui.NewModel(ctx, ui.Options{
		Gateway:    gw,
		Log:        log,
		Extractor:  tasks.NewExtractor(log, nil),
		Queue:      tasks.NewQueue(opts),
		ExtractDir: extractDir,
		RestoreDir: extractDir,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
