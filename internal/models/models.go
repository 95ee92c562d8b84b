package models

// Privacy is the visibility of a playlist on the remote service.
type Privacy string

const (
	PrivacyPrivate  Privacy = "private"
	PrivacyUnlisted Privacy = "unlisted"
	PrivacyPublic   Privacy = "public"
)

// ParsePrivacy returns the [Privacy] named by s, or false when s is not a known value.
func ParsePrivacy(s string) (Privacy, bool) {
	switch p := Privacy(s); p {
	case PrivacyPrivate, PrivacyUnlisted, PrivacyPublic:
		return p, true
	default:
		return "", false
	}
}

// PlaylistSummary is the listing view of a remote playlist.
type PlaylistSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Thumbnail     string `json:"thumbnail,omitempty"`
	ItemCount     int    `json:"itemCount"`
	PrivacyStatus string `json:"privacyStatus"`
}

// PlaylistItem is one video within a remote playlist.
type PlaylistItem struct {
	ID           string `json:"id"`
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Position     int    `json:"position"`
	ChannelTitle string `json:"channelTitle,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
}

// Channel is the signed-in account's channel.
type Channel struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Row is a single decoded line of a backup file.
type Row struct {
	PlaylistName string `json:"playlistName"`
	VideoURL     string `json:"videoUrl"`
	VideoTitle   string `json:"videoTitle"`
	VideoID      string `json:"videoId"`
	Position     int    `json:"position"`
}

// Record is a decoded backup file.
//
// Warnings collects rows that were skipped while decoding.
type Record struct {
	Name     string   `json:"name"`
	Source   string   `json:"source"`
	Rows     []Row    `json:"rows"`
	Warnings []string `json:"warnings,omitempty"`
}

// VideoTitles returns the titles of rows in order.
func VideoTitles(rows []Row) []string {
	titles := make([]string, len(rows))
	for i, row := range rows {
		titles[i] = row.VideoTitle
	}
	return titles
}

// JobStore persists restoration job snapshots.
type JobStore interface {
	// RecordJob inserts or updates the stored snapshot of job.
	RecordJob(job RestorationJob) error

	// Get retrieves a job by its ID.
	Get(id string) (*RestorationJob, error)

	// List retrieves all jobs matching the given criteria.
	List(criteria map[string]any) ([]RestorationJob, error)

	// Delete removes a job from the history.
	Delete(id string) error
}
