package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubesync/internal/formatter"
	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/services"
	"github.com/desertthunder/tubesync/internal/shared"
	"github.com/desertthunder/tubesync/internal/storage"
)

// PlaylistOutcome is the result of extracting one playlist.
type PlaylistOutcome struct {
	PlaylistID string
	Title      string
	FileName   string // Written record, empty on failure
	Items      int
	Err        error
}

// ExtractResult summarizes an extraction run.
type ExtractResult struct {
	Succeeded int
	Results   []PlaylistOutcome // One per attempted playlist, in selection order
	Cancelled bool              // Set when the run stopped before every selected playlist was attempted
}

// Errors returns the failed outcomes.
func (r *ExtractResult) Errors() []PlaylistOutcome {
	var failed []PlaylistOutcome
	for _, o := range r.Results {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Extractor writes one backup record per selected playlist.
type Extractor struct {
	log   *EventLog
	pacer Pacer
}

// NewExtractor creates an [Extractor] reporting to log. pacer spaces the item listing calls and may be nil.
func NewExtractor(log *EventLog, pacer Pacer) *Extractor {
	if log == nil {
		log = NewEventLog(nil)
	}
	if pacer == nil {
		pacer = noPacer{}
	}
	return &Extractor{log: log, pacer: pacer}
}

// Extract fetches the items of every selected playlist through gw and writes each as a record into dest.
//
// catalog supplies titles for the selected ids; when nil it is fetched from gw. A failure on one playlist is logged
// and recorded in its outcome without stopping the run. Cancellation of ctx is checked between playlists only; a
// cancelled run returns the partial result together with an error wrapping [shared.ErrCancelled].
func (e *Extractor) Extract(ctx context.Context, gw services.Gateway, catalog []models.PlaylistSummary, selectedIDs []string, dest storage.Folder) (*ExtractResult, error) {
	if gw == nil {
		return nil, fmt.Errorf("%w: no authorized session", shared.ErrCapabilityUnavailable)
	}
	if dest == nil {
		return nil, fmt.Errorf("%w: no destination folder", shared.ErrCapabilityUnavailable)
	}

	if len(selectedIDs) == 0 {
		e.log.Warn("No playlists selected.")
		return &ExtractResult{}, nil
	}

	if catalog == nil {
		var err error
		if catalog, err = gw.ListPlaylists(ctx); err != nil {
			e.log.Error(fmt.Sprintf("Failed to load playlists: %v", err))
			return nil, err
		}
	}

	byID := make(map[string]models.PlaylistSummary, len(catalog))
	for _, pl := range catalog {
		byID[pl.ID] = pl
	}

	result := &ExtractResult{Results: make([]PlaylistOutcome, 0, len(selectedIDs))}
	total := len(selectedIDs)

	for i, id := range selectedIDs {
		if ctx.Err() != nil {
			result.Cancelled = true
			e.log.Warn(fmt.Sprintf("Export cancelled; %d of %d playlists exported.", result.Succeeded, total))
			return result, fmt.Errorf("%w: %v", shared.ErrCancelled, ctx.Err())
		}

		pl, ok := byID[id]
		if !ok {
			err := fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
			e.log.Error(fmt.Sprintf("Skipping %s: not in the playlist catalog", id), "playlist_id", id)
			result.Results = append(result.Results, PlaylistOutcome{PlaylistID: id, Err: err})
			continue
		}

		e.log.Info(fmt.Sprintf("Extracting: %s (%d/%d)...", pl.Title, i+1, total), "playlist_id", id)
		outcome := e.extractOne(context.WithoutCancel(ctx), gw, pl, dest)
		if outcome.Err != nil {
			e.log.Error(fmt.Sprintf("Failed to extract %s: %v", pl.Title, outcome.Err), "playlist_id", id)
		} else {
			result.Succeeded++
		}
		result.Results = append(result.Results, outcome)
	}

	if result.Succeeded == total {
		e.log.Success(fmt.Sprintf("Successfully exported %d playlists to folder '%s'.", result.Succeeded, dest.Name()))
	} else {
		e.log.Warn(fmt.Sprintf("Exported %d of %d playlists to folder '%s'; %d failed.",
			result.Succeeded, total, dest.Name(), total-result.Succeeded))
	}
	return result, nil
}

func (e *Extractor) extractOne(ctx context.Context, gw services.Gateway, pl models.PlaylistSummary, dest storage.Folder) PlaylistOutcome {
	outcome := PlaylistOutcome{PlaylistID: pl.ID, Title: pl.Title}

	if err := e.pacer.Wait(ctx); err != nil {
		outcome.Err = err
		return outcome
	}

	items, err := gw.ListItems(ctx, pl.ID)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	name := formatter.RecordFileName(pl.Title, pl.ID)
	if err := dest.WriteText(ctx, name, formatter.EncodeRecord(pl.Title, items)); err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.FileName = name
	outcome.Items = len(items)
	return outcome
}
