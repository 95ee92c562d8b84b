package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/shared"
	"google.golang.org/api/googleapi"
)

// Gateway is the remote playlist catalog of one signed-in account.
type Gateway interface {
	// ListPlaylists retrieves every playlist owned by the account, following pagination to the end.
	ListPlaylists(ctx context.Context) ([]models.PlaylistSummary, error)

	// ListItems retrieves every item of a playlist ordered by position.
	ListItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error)

	// CreatePlaylist creates an empty playlist and returns its remote ID.
	CreatePlaylist(ctx context.Context, title, description string, privacy models.Privacy) (string, error)

	// AddItem appends a video to a playlist. Failures are not retried.
	AddItem(ctx context.Context, playlistID, videoID string) error

	// Profile returns the account's channel.
	Profile(ctx context.Context) (*models.Channel, error)
}

// Reasons reported by the YouTube API when a quota or rate limit is hit.
var quotaReasons = map[string]bool{
	"quotaExceeded":         true,
	"rateLimitExceeded":     true,
	"dailyLimitExceeded":    true,
	"userRateLimitExceeded": true,
}

// TransportError describes a failed remote call.
type TransportError struct {
	Op     string // Gateway operation, e.g. "playlists.insert"
	Status int    // HTTP status when the remote answered, else 0
	Reason string // first error reason reported by the API
	Err    error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Op)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d", e.Status)
		if e.Reason != "" {
			msg += ", " + e.Reason
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches [shared.ErrTransport] always, [shared.ErrQuotaExceeded] for quota reasons and
// [shared.ErrPlaylistNotFound] for 404 answers.
func (e *TransportError) Is(target error) bool {
	switch target {
	case shared.ErrTransport:
		return true
	case shared.ErrQuotaExceeded:
		return e.Quota()
	case shared.ErrPlaylistNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Quota reports whether the remote rejected the call for quota or rate limiting.
func (e *TransportError) Quota() bool {
	return quotaReasons[e.Reason]
}

// newTransportError wraps err for op, pulling status and reason out of [googleapi.Error] when present.
func newTransportError(op string, err error) error {
	if err == nil {
		return nil
	}
	te := &TransportError{Op: op, Err: err}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		te.Status = gerr.Code
		if len(gerr.Errors) > 0 {
			te.Reason = gerr.Errors[0].Reason
		}
	}
	return te
}
