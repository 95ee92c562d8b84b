package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubesync/internal/formatter"
	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/shared"
	"github.com/desertthunder/tubesync/internal/storage"
	"github.com/desertthunder/tubesync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Restore loads every CSV record in --from and recreates the playlists one after another.
func (r *Runner) Restore(ctx context.Context, cmd *cli.Command) error {
	privacy, err := r.privacy(cmd.String("privacy"))
	if err != nil {
		return err
	}

	src, err := storage.OpenDir(cmd.String("from"))
	if err != nil {
		return err
	}

	gw, err := r.session(ctx)
	if err != nil {
		return err
	}

	opts := tasks.QueueOpts{
		Log:       tasks.NewEventLog(r.logger),
		Pacer:     tasks.NewPacer(r.pacing(cmd.Duration("interval"), cmd.IsSet("interval"))),
		Describer: r.describer(ctx, cmd.Bool("describe")),
		Privacy:   privacy,
	}
	if repo := r.history(); repo != nil {
		opts.Recorder = repo
	}
	queue := tasks.NewQueue(opts)

	added, err := queue.EnqueueFolder(ctx, src)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		return r.writePlain("No playlists to restore in %s\n", src.Path())
	}

	summary, err := queue.ProcessQueue(ctx, gw)
	if summary == nil {
		return err
	}

	if cmd.Bool("json") {
		if jsonErr := r.writeJSON(summary, true); jsonErr != nil {
			return jsonErr
		}
		return err
	}

	r.writePlainHeader("Restore")
	r.writePlain("%s\n", formatter.JobsToTable(summary.Jobs))
	r.writePlainln("Created %d playlists (%d failed), added %d videos (%d skipped)",
		summary.Done, summary.Failed, summary.ItemsAdded, summary.ItemsFailed)
	if summary.Cancelled {
		r.writePlain("Restore was cancelled; remaining playlists were not created.\n")
	}
	return err
}

// History prints recorded restoration jobs.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	repo := r.history()
	if repo == nil {
		return fmt.Errorf("%w: job history database unavailable", shared.ErrCapabilityUnavailable)
	}

	criteria := map[string]any{}
	if status := cmd.String("status"); status != "" {
		if !models.JobStatus(status).IsValid() {
			return fmt.Errorf("%w: unknown status %q", shared.ErrInvalidArgument, status)
		}
		criteria["status"] = status
	}
	if limit := cmd.Int("limit"); limit > 0 {
		criteria["limit"] = int(limit)
	}

	jobs, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(jobs, true)
	}
	if len(jobs) == 0 {
		return r.writePlain("No restoration jobs recorded.\n")
	}
	return r.writePlain("%s\n", formatter.JobsToTable(jobs))
}
