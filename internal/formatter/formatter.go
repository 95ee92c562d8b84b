// package formatter renders playlist data: the CSV backup record format plus listings for the CLI (table, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/tubesync/internal/models"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// PlaylistsToTable renders playlists as a bordered table with columns: ID, Title, Items, Privacy
func PlaylistsToTable(playlists []models.PlaylistSummary) string {
	t := newTable("ID", "Title", "Items", "Privacy")
	for _, pl := range playlists {
		t.Row(pl.ID, pl.Title, strconv.Itoa(pl.ItemCount), pl.PrivacyStatus)
	}
	return t.String()
}

// PlaylistsToMarkdown renders playlists as a Markdown list with thumbnails where available
func PlaylistsToMarkdown(playlists []models.PlaylistSummary) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Playlists\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %d\n\n", len(playlists)))

	for i, pl := range playlists {
		buf.WriteString(fmt.Sprintf("%d. **%s** (%d items, %s) `%s`\n", i+1, pl.Title, pl.ItemCount, pl.PrivacyStatus, pl.ID))
		if pl.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", pl.Description))
		}
		if pl.Thumbnail != "" {
			buf.WriteString(fmt.Sprintf("   ![%s](%s)\n", pl.Title, pl.Thumbnail))
		}
	}

	return buf.Bytes()
}

// JobsToTable renders restoration jobs with columns: ID, Playlist, Status, Added, Failed, Remote ID, Error
func JobsToTable(jobs []models.RestorationJob) string {
	t := newTable("ID", "Playlist", "Status", "Added", "Failed", "Remote ID", "Error")
	for _, job := range jobs {
		t.Row(
			shortID(job.ID),
			job.Name,
			job.Status.String(),
			fmt.Sprintf("%d/%d", job.ItemsAdded, job.ItemsTotal),
			strconv.Itoa(job.ItemsFailed),
			job.RemotePlaylistID,
			job.Error,
		)
	}
	return t.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ToJSON renders v as indented JSON
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}
