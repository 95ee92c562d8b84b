package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/shared"
)

// RecordHeader is the first line of every backup file.
const RecordHeader = "playlistName,videoUrl,videoTitle,videoId,position"

const watchURL = "https://www.youtube.com/watch?v="

// VideoURL returns the canonical watch URL for a video id.
func VideoURL(videoID string) string {
	return watchURL + videoID
}

// EncodeRecord renders items as a backup file for the playlist called name.
//
// The playlist name and video title are always double-quoted with inner quotes doubled.
// Video ids and positions are written verbatim. Rows are joined with "\n" and the text has no trailing newline.
func EncodeRecord(name string, items []models.PlaylistItem) string {
	var b strings.Builder
	b.WriteString(RecordHeader)
	b.WriteByte('\n')

	quotedName := quote(name)
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s,%s,%s,%s,%d", quotedName, VideoURL(item.VideoID), quote(item.Title), item.VideoID, item.Position)
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// DecodeRecord parses a backup file. source identifies where text came from (usually a file name) and supplies the
// playlist name when no row carries one.
//
// Returns [shared.ErrDecode] when the text has fewer than two lines or the header names neither videoId nor videoUrl.
// Rows that cannot be used are skipped and described in [models.Record.Warnings].
func DecodeRecord(text, source string) (*models.Record, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: %s: expected a header and at least one row", shared.ErrDecode, source)
	}

	header := strings.Split(strings.TrimSpace(lines[0]), ",")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if !slices.Contains(header, "videoId") && !slices.Contains(header, "videoUrl") {
		return nil, fmt.Errorf("%w: %s: header has no videoId or videoUrl column", shared.ErrDecode, source)
	}

	record := &models.Record{Source: source}
	for n, line := range lines[1:] {
		lineNo := n + 2
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols, err := splitRow(line)
		if err != nil {
			record.Warnings = append(record.Warnings, fmt.Sprintf("line %d: unreadable row: %v", lineNo, err))
			continue
		}
		if len(cols) < 4 {
			record.Warnings = append(record.Warnings, fmt.Sprintf("line %d: expected at least 4 fields, got %d", lineNo, len(cols)))
			continue
		}

		row := models.Row{
			PlaylistName: cols[0],
			VideoURL:     cols[1],
			VideoTitle:   cols[2],
			VideoID:      strings.TrimSpace(cols[3]),
		}
		if len(cols) > 4 {
			if pos, err := strconv.Atoi(strings.TrimSpace(cols[4])); err == nil {
				row.Position = pos
			}
		}
		record.Rows = append(record.Rows, row)
	}

	if len(record.Rows) > 0 && record.Rows[0].PlaylistName != "" {
		record.Name = record.Rows[0].PlaylistName
	} else {
		record.Name = nameFromSource(source)
	}

	if len(record.Rows) == 0 {
		record.Warnings = append(record.Warnings, "no usable rows")
	}
	return record, nil
}

// splitRow reads one quote-aware CSV row.
func splitRow(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	cols, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	return cols, err
}

func nameFromSource(source string) string {
	if ext := filepath.Ext(source); strings.EqualFold(ext, ".csv") {
		source = strings.TrimSuffix(source, ext)
	}
	return strings.ReplaceAll(source, "_", " ")
}

// RecordFileName derives the backup file name for a playlist: every character outside [A-Za-z0-9] becomes "_",
// the result is lower-cased and suffixed with "_<id>.csv".
func RecordFileName(title, id string) string {
	var b strings.Builder
	for _, r := range title {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return strings.ToLower(b.String()) + "_" + id + ".csv"
}
