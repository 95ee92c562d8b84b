package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/desertthunder/tubesync/internal/models"
)

func TestListings(t *testing.T) {
	playlists := []models.PlaylistSummary{
		{ID: "PL1", Title: "Road Trip", Description: "Songs for driving", ItemCount: 12, PrivacyStatus: "public", Thumbnail: "https://i.ytimg.com/a.jpg"},
		{ID: "PL2", Title: "Focus", ItemCount: 3, PrivacyStatus: "private"},
	}

	t.Run("PlaylistsToTable", func(t *testing.T) {
		out := PlaylistsToTable(playlists)

		for _, want := range []string{"ID", "Title", "Items", "Privacy", "PL1", "Road Trip", "12", "private"} {
			if !strings.Contains(out, want) {
				t.Errorf("table missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("PlaylistsToMarkdown", func(t *testing.T) {
		md := string(PlaylistsToMarkdown(playlists))

		if !strings.HasPrefix(md, "# Playlists\n\n") {
			t.Error("markdown should start with a heading")
		}
		if !strings.Contains(md, "**Total**: 2") {
			t.Error("markdown should contain the playlist count")
		}
		if !strings.Contains(md, "1. **Road Trip** (12 items, public) `PL1`") {
			t.Errorf("markdown should list the first playlist, got:\n%s", md)
		}
		if !strings.Contains(md, "![Road Trip](https://i.ytimg.com/a.jpg)") {
			t.Error("markdown should embed the thumbnail")
		}
		if strings.Count(md, "![") != 1 {
			t.Error("playlists without thumbnails should not render an image")
		}
	})

	t.Run("JobsToTable", func(t *testing.T) {
		jobs := []models.RestorationJob{
			{ID: "0123456789abcdef", Name: "Road Trip", Status: models.JobDone, ItemsTotal: 3, ItemsAdded: 2, ItemsFailed: 1, RemotePlaylistID: "PLnew"},
			{ID: "short", Name: "Broken", Status: models.JobError, Error: "quota exceeded"},
		}
		out := JobsToTable(jobs)

		for _, want := range []string{"01234567", "Road Trip", "done", "2/3", "PLnew", "error", "quota exceeded"} {
			if !strings.Contains(out, want) {
				t.Errorf("table missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "0123456789abcdef") {
			t.Error("job IDs should be shortened")
		}
	})

	t.Run("ToJSON", func(t *testing.T) {
		data, err := ToJSON(playlists)
		if err != nil {
			t.Fatalf("ToJSON() error = %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded[0]["id"] != "PL1" || decoded[0]["itemCount"] != float64(12) {
			t.Errorf("unexpected JSON fields: %v", decoded[0])
		}
		if _, ok := decoded[1]["thumbnail"]; ok {
			t.Error("empty thumbnail should be omitted")
		}
	})
}
