package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tubesync/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = jobItem{}
)

// playlistItem wraps [models.PlaylistSummary] with its selection mark to implement [list.Item].
type playlistItem struct {
	playlist models.PlaylistSummary
	selected bool
}

func (i playlistItem) FilterValue() string { return i.playlist.Title }
func (i playlistItem) Title() string {
	mark := "[ ]"
	if i.selected {
		mark = "[x]"
	}
	return mark + " " + i.playlist.Title
}
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d videos", i.playlist.ItemCount)
	if i.playlist.PrivacyStatus != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.PrivacyStatus)
	}
	return desc
}

// jobItem wraps [models.RestorationJob] to implement [list.Item].
type jobItem struct {
	job models.RestorationJob
}

func (i jobItem) FilterValue() string { return i.job.Name }
func (i jobItem) Title() string {
	return fmt.Sprintf("%s %s", styles.Status(i.job.Status).Render("["+i.job.Status.String()+"]"), i.job.Name)
}
func (i jobItem) Description() string {
	desc := fmt.Sprintf("%d videos • %s", i.job.ItemsTotal, i.job.Source)
	switch {
	case i.job.Status == models.JobError:
		desc = fmt.Sprintf("%s • %s", desc, i.job.Error)
	case i.job.Status == models.JobDone:
		desc = fmt.Sprintf("%s • %d added, %d skipped", desc, i.job.ItemsAdded, i.job.ItemsFailed)
	}
	return desc
}

func playlistItems(playlists []models.PlaylistSummary) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, pl := range playlists {
		items[i] = playlistItem{playlist: pl}
	}
	return items
}

func jobItems(jobs []models.RestorationJob) []list.Item {
	items := make([]list.Item, len(jobs))
	for i, job := range jobs {
		items[i] = jobItem{job: job}
	}
	return items
}
