// YouTube Data API v3 [Gateway] implementation
package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/desertthunder/tubesync/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// pageSize is the maximum page size accepted by the list endpoints.
const pageSize int64 = 50

// YouTubeService implements [Gateway] for the signed-in YouTube account.
type YouTubeService struct {
	api *youtube.Service
}

// NewYouTubeService creates a [YouTubeService] whose requests are sent through client.
//
// client is expected to carry the account's OAuth2 token. opts are appended after the client and are mostly used by
// tests to point the service at a fake endpoint.
func NewYouTubeService(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*YouTubeService, error) {
	if client == nil {
		client = http.DefaultClient
	}

	api, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}
	return &YouTubeService{api: api}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// ListPlaylists retrieves all playlists owned by the account.
//
// Calls playlists.list with mine=true, 50 per page.
func (y *YouTubeService) ListPlaylists(ctx context.Context) ([]models.PlaylistSummary, error) {
	call := y.api.Playlists.List([]string{"snippet", "contentDetails", "status"}).
		Mine(true).
		MaxResults(pageSize)

	var playlists []models.PlaylistSummary
	err := call.Pages(ctx, func(resp *youtube.PlaylistListResponse) error {
		for _, pl := range resp.Items {
			playlists = append(playlists, toPlaylistSummary(pl))
		}
		return nil
	})
	if err != nil {
		return nil, newTransportError("playlists.list", err)
	}

	return playlists, nil
}

// ListItems retrieves every item in a playlist, sorted by position.
//
// Calls playlistItems.list, 50 per page.
func (y *YouTubeService) ListItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error) {
	call := y.api.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(pageSize)

	var items []models.PlaylistItem
	err := call.Pages(ctx, func(resp *youtube.PlaylistItemListResponse) error {
		for _, it := range resp.Items {
			items = append(items, toPlaylistItem(it))
		}
		return nil
	})
	if err != nil {
		return nil, newTransportError("playlistItems.list", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

// CreatePlaylist creates a new playlist and returns its ID.
//
// Calls playlists.insert with snippet and status parts.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title, description string, privacy models.Privacy) (string, error) {
	if privacy == "" {
		privacy = models.PrivacyPrivate
	}

	playlist := &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{
			Title:       title,
			Description: description,
		},
		Status: &youtube.PlaylistStatus{
			PrivacyStatus: string(privacy),
		},
	}

	created, err := y.api.Playlists.Insert([]string{"snippet", "status"}, playlist).Context(ctx).Do()
	if err != nil {
		return "", newTransportError("playlists.insert", err)
	}
	return created.Id, nil
}

// AddItem appends a video to the end of a playlist.
//
// Calls playlistItems.insert once; the caller decides what to do with a failure.
func (y *YouTubeService) AddItem(ctx context.Context, playlistID, videoID string) error {
	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}

	if _, err := y.api.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do(); err != nil {
		return newTransportError("playlistItems.insert", err)
	}
	return nil
}

// Profile returns the account's own channel.
//
// Calls channels.list with mine=true.
func (y *YouTubeService) Profile(ctx context.Context) (*models.Channel, error) {
	resp, err := y.api.Channels.List([]string{"snippet"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return nil, newTransportError("channels.list", err)
	}
	if len(resp.Items) == 0 {
		return nil, &TransportError{Op: "channels.list", Status: http.StatusNotFound, Reason: "channelNotFound"}
	}

	ch := resp.Items[0]
	channel := &models.Channel{ID: ch.Id}
	if ch.Snippet != nil {
		channel.Title = ch.Snippet.Title
		channel.Thumbnail = thumbnailURL(ch.Snippet.Thumbnails, false)
	}
	return channel, nil
}

func toPlaylistSummary(pl *youtube.Playlist) models.PlaylistSummary {
	summary := models.PlaylistSummary{ID: pl.Id}
	if pl.Snippet != nil {
		summary.Title = pl.Snippet.Title
		summary.Description = pl.Snippet.Description
		summary.Thumbnail = thumbnailURL(pl.Snippet.Thumbnails, true)
	}
	if pl.ContentDetails != nil {
		summary.ItemCount = int(pl.ContentDetails.ItemCount)
	}
	if pl.Status != nil {
		summary.PrivacyStatus = pl.Status.PrivacyStatus
	}
	return summary
}

func toPlaylistItem(it *youtube.PlaylistItem) models.PlaylistItem {
	item := models.PlaylistItem{ID: it.Id}
	if it.Snippet != nil {
		item.Title = it.Snippet.Title
		item.Position = int(it.Snippet.Position)
		item.ChannelTitle = it.Snippet.VideoOwnerChannelTitle
		item.Thumbnail = thumbnailURL(it.Snippet.Thumbnails, false)
		if it.Snippet.ResourceId != nil {
			item.VideoID = it.Snippet.ResourceId.VideoId
		}
	}
	if item.VideoID == "" && it.ContentDetails != nil {
		item.VideoID = it.ContentDetails.VideoId
	}
	return item
}

// thumbnailURL picks the medium thumbnail when preferMedium is set and present, else the default one.
func thumbnailURL(t *youtube.ThumbnailDetails, preferMedium bool) string {
	if t == nil {
		return ""
	}
	if preferMedium && t.Medium != nil && t.Medium.Url != "" {
		return t.Medium.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}
