package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubesync/internal/formatter"
	"github.com/desertthunder/tubesync/internal/shared"
	"github.com/desertthunder/tubesync/internal/storage"
	"github.com/desertthunder/tubesync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Playlists lists the signed-in account's playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	gw, err := r.session(ctx)
	if err != nil {
		return err
	}

	playlists, err := gw.ListPlaylists(ctx)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	case cmd.Bool("markdown"):
		return r.writePlain("%s", formatter.PlaylistsToMarkdown(playlists))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists found.\n")
	}
	return r.writePlain("%s\n", formatter.PlaylistsToTable(playlists))
}

// Extract writes the selected playlists as CSV records into the extraction sub-folder of --out.
func (r *Runner) Extract(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.StringSlice("id")
	all := cmd.Bool("all")
	if len(ids) == 0 && !all {
		return fmt.Errorf("%w: pass --id at least once or --all", shared.ErrMissingArgument)
	}
	if len(ids) > 0 && all {
		return fmt.Errorf("%w: cannot combine --id and --all", shared.ErrInvalidArgument)
	}

	root, err := storage.OpenDir(cmd.String("out"))
	if err != nil {
		return err
	}
	dest, err := root.Sub(r.config.Extract.Subfolder)
	if err != nil {
		return err
	}

	gw, err := r.session(ctx)
	if err != nil {
		return err
	}

	catalog, err := gw.ListPlaylists(ctx)
	if err != nil {
		return err
	}
	if all {
		for _, pl := range catalog {
			ids = append(ids, pl.ID)
		}
	}

	log := tasks.NewEventLog(r.logger)
	result, err := tasks.NewExtractor(log, nil).Extract(ctx, gw, catalog, ids, dest)
	if result != nil {
		r.writePlainHeader("Extraction")
		for _, o := range result.Results {
			if o.Err != nil {
				r.writePlain("✗ %s: %v\n", o.PlaylistID, o.Err)
				continue
			}
			r.writePlain("✓ %s (%d videos) → %s\n", o.Title, o.Items, o.FileName)
		}
		r.writePlainln("Exported %d of %d playlists to %s", result.Succeeded, len(ids), dest.Path())
	}
	return err
}
