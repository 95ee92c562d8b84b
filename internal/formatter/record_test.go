package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/shared"
)

func sampleItems() []models.PlaylistItem {
	return []models.PlaylistItem{
		{ID: "m1", VideoID: "dQw4w9WgXcQ", Title: "Never Gonna Give You Up", Position: 0},
		{ID: "m2", VideoID: "9bZkp7q19f0", Title: "Gangnam Style", Position: 1},
		{ID: "m3", VideoID: "kJQP7kiw5Fk", Title: "Despacito", Position: 2},
	}
}

func TestEncodeRecord(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		text := EncodeRecord("My Mix", sampleItems())
		lines := strings.Split(text, "\n")

		if len(lines) != 4 {
			t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
		}
		if lines[0] != RecordHeader {
			t.Errorf("unexpected header %q", lines[0])
		}

		want := `"My Mix",https://www.youtube.com/watch?v=dQw4w9WgXcQ,"Never Gonna Give You Up",dQw4w9WgXcQ,0`
		if lines[1] != want {
			t.Errorf("row 1 = %q, want %q", lines[1], want)
		}
		if strings.HasSuffix(text, "\n") {
			t.Error("encoded text should not end with a newline")
		}
	})

	t.Run("quotes are doubled in name and title", func(t *testing.T) {
		items := []models.PlaylistItem{{VideoID: "abc", Title: `The "Best" Song`, Position: 7}}
		text := EncodeRecord(`Dad's "Hits"`, items)
		row := strings.Split(text, "\n")[1]

		want := `"Dad's ""Hits""",https://www.youtube.com/watch?v=abc,"The ""Best"" Song",abc,7`
		if row != want {
			t.Errorf("row = %q, want %q", row, want)
		}
	})

	t.Run("positions are written verbatim", func(t *testing.T) {
		items := []models.PlaylistItem{{VideoID: "a", Position: 5}, {VideoID: "b", Position: 2}}
		lines := strings.Split(EncodeRecord("x", items), "\n")

		if !strings.HasSuffix(lines[1], ",a,5") || !strings.HasSuffix(lines[2], ",b,2") {
			t.Errorf("positions should not be renumbered: %q", lines[1:])
		}
	})

	t.Run("empty playlist is header only", func(t *testing.T) {
		if got := EncodeRecord("Empty", nil); got != RecordHeader+"\n" {
			t.Errorf("unexpected output %q", got)
		}
	})
}

func TestDecodeRecord(t *testing.T) {
	t.Run("round trip preserves ids positions and order", func(t *testing.T) {
		items := sampleItems()
		record, err := DecodeRecord(EncodeRecord("My Mix", items), "my_mix_PL1.csv")
		if err != nil {
			t.Fatalf("DecodeRecord() error = %v", err)
		}

		if record.Name != "My Mix" {
			t.Errorf("expected name from rows, got %q", record.Name)
		}
		if len(record.Rows) != len(items) {
			t.Fatalf("expected %d rows, got %d", len(items), len(record.Rows))
		}
		for i, row := range record.Rows {
			if row.VideoID != items[i].VideoID || row.Position != items[i].Position {
				t.Errorf("row %d = (%s, %d), want (%s, %d)", i, row.VideoID, row.Position, items[i].VideoID, items[i].Position)
			}
			if row.VideoTitle != items[i].Title {
				t.Errorf("row %d title = %q, want %q", i, row.VideoTitle, items[i].Title)
			}
		}
		if len(record.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", record.Warnings)
		}
	})

	t.Run("round trip survives commas and quotes", func(t *testing.T) {
		items := []models.PlaylistItem{
			{VideoID: "v1", Title: "Hello, World", Position: 0},
			{VideoID: "v2", Title: `She said "hi", then left`, Position: 1},
		}
		record, err := DecodeRecord(EncodeRecord(`Rock, "Roll" & More`, items), "x.csv")
		if err != nil {
			t.Fatalf("DecodeRecord() error = %v", err)
		}

		if len(record.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d (warnings %v)", len(record.Rows), record.Warnings)
		}
		if record.Rows[0].VideoTitle != "Hello, World" || record.Rows[1].VideoTitle != `She said "hi", then left` {
			t.Errorf("titles not recovered: %+v", record.Rows)
		}
		if record.Rows[1].VideoID != "v2" || record.Rows[1].Position != 1 {
			t.Errorf("unexpected row %+v", record.Rows[1])
		}
		if record.Name != `Rock, "Roll" & More` {
			t.Errorf("name not recovered, got %q", record.Name)
		}
	})

	t.Run("round trip keeps quotes in the name", func(t *testing.T) {
		record, err := DecodeRecord(EncodeRecord(`Rock "n" Roll`, sampleItems()), "rock_n_roll_PL9.csv")
		if err != nil {
			t.Fatalf("DecodeRecord() error = %v", err)
		}
		if record.Name != `Rock "n" Roll` {
			t.Errorf("expected name %q, got %q", `Rock "n" Roll`, record.Name)
		}
		for i, row := range record.Rows {
			if row.PlaylistName != `Rock "n" Roll` {
				t.Errorf("row %d name = %q", i, row.PlaylistName)
			}
		}
		if len(record.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", record.Warnings)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		tests := []struct {
			name string
			text string
		}{
			{name: "empty", text: ""},
			{name: "whitespace", text: "  \n\n "},
			{name: "header only", text: RecordHeader + "\n"},
			{name: "no id or url column", text: "name,title\nfoo,bar"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				record, err := DecodeRecord(tt.text, "bad.csv")
				if !errors.Is(err, shared.ErrDecode) {
					t.Errorf("expected ErrDecode, got %v", err)
				}
				if record != nil {
					t.Error("expected nil record")
				}
			})
		}
	})

	t.Run("header with only videoUrl is accepted", func(t *testing.T) {
		text := "playlistName,videoUrl,videoTitle,id\nA,https://www.youtube.com/watch?v=x,T,x"
		if _, err := DecodeRecord(text, "a.csv"); err != nil {
			t.Errorf("expected success, got %v", err)
		}
	})

	t.Run("short rows become warnings", func(t *testing.T) {
		text := RecordHeader + "\n" +
			`"Mix",https://www.youtube.com/watch?v=a,"A",a,0` + "\n" +
			"broken,row\n" +
			`"Mix",https://www.youtube.com/watch?v=b,"B",b,1`

		record, err := DecodeRecord(text, "mix.csv")
		if err != nil {
			t.Fatalf("DecodeRecord() error = %v", err)
		}
		if len(record.Rows) != 2 {
			t.Errorf("expected 2 rows, got %d", len(record.Rows))
		}
		if len(record.Warnings) != 1 || !strings.Contains(record.Warnings[0], "line 3") {
			t.Errorf("expected one warning for line 3, got %v", record.Warnings)
		}
	})

	t.Run("name falls back to source", func(t *testing.T) {
		text := RecordHeader + "\n,https://www.youtube.com/watch?v=a,A,a,0"
		record, err := DecodeRecord(text, "summer_vibes_2024.csv")
		if err != nil {
			t.Fatalf("DecodeRecord() error = %v", err)
		}
		if record.Name != "summer vibes 2024" {
			t.Errorf("expected fallback name, got %q", record.Name)
		}
	})

	t.Run("fallback name trims only the extension", func(t *testing.T) {
		tests := []struct {
			source string
			want   string
		}{
			{source: "My_Mix.CSV", want: "My Mix"},
			{source: "my.csv_notes.csv", want: "my.csv notes"},
			{source: "road_trip", want: "road trip"},
		}

		for _, tt := range tests {
			t.Run(tt.source, func(t *testing.T) {
				text := RecordHeader + "\n,https://www.youtube.com/watch?v=a,A,a,0"
				record, err := DecodeRecord(text, tt.source)
				if err != nil {
					t.Fatalf("DecodeRecord() error = %v", err)
				}
				if record.Name != tt.want {
					t.Errorf("expected %q, got %q", tt.want, record.Name)
				}
			})
		}
	})

	t.Run("position defaults to zero", func(t *testing.T) {
		text := RecordHeader + "\nA,u,T,id1,notanumber\nA,u,T,id2"
		record, err := DecodeRecord(text, "a.csv")
		if err != nil {
			t.Fatalf("DecodeRecord() error = %v", err)
		}
		for _, row := range record.Rows {
			if row.Position != 0 {
				t.Errorf("expected position 0 for %s, got %d", row.VideoID, row.Position)
			}
		}
	})

	t.Run("crlf line endings", func(t *testing.T) {
		text := strings.ReplaceAll(EncodeRecord("Mix", sampleItems()), "\n", "\r\n")
		record, err := DecodeRecord(text, "a.csv")
		if err != nil {
			t.Fatalf("DecodeRecord() error = %v", err)
		}
		if got := record.Rows[2].Position; got != 2 {
			t.Errorf("expected position 2, got %d", got)
		}
	})

	t.Run("no usable rows still returns a record", func(t *testing.T) {
		record, err := DecodeRecord(RecordHeader+"\nonly,three,fields", "a.csv")
		if err != nil {
			t.Fatalf("DecodeRecord() error = %v", err)
		}
		if len(record.Rows) != 0 || len(record.Warnings) != 2 {
			t.Errorf("expected zero rows and two warnings, got %d rows %v", len(record.Rows), record.Warnings)
		}
	})
}

func TestRecordFileName(t *testing.T) {
	tests := []struct {
		title, id, want string
	}{
		{"Road Trip", "PL1", "road_trip_PL1.csv"},
		{"Rock & Roll!", "PLx", "rock___roll__PLx.csv"},
		{"ÄÖ 99", "id", "___99_id.csv"},
		{"", "PL2", "_PL2.csv"},
	}

	for _, tt := range tests {
		if got := RecordFileName(tt.title, tt.id); got != tt.want {
			t.Errorf("RecordFileName(%q, %q) = %q, want %q", tt.title, tt.id, got, tt.want)
		}
	}

	t.Run("duplicate titles stay distinct", func(t *testing.T) {
		if RecordFileName("Mix", "A") == RecordFileName("Mix", "B") {
			t.Error("different ids must produce different names")
		}
	})
}
