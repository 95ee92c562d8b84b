package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/shared"
	"google.golang.org/api/option"
)

func newTestService(t *testing.T, handler http.Handler) *YouTubeService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewYouTubeService(context.Background(), server.Client(), option.WithEndpoint(server.URL+"/"))
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, code int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": reason,
			"errors":  []map[string]any{{"reason": reason, "message": reason, "domain": "youtube.quota"}},
		},
	})
}

func TestYouTubeService(t *testing.T) {
	t.Run("Name", func(t *testing.T) {
		svc := newTestService(t, http.NotFoundHandler())
		if svc.Name() != "YouTube" {
			t.Errorf("expected name to be 'YouTube', got %s", svc.Name())
		}
	})

	t.Run("ListPlaylists", func(t *testing.T) {
		t.Run("follows pagination to the end", func(t *testing.T) {
			var calls int
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/youtube/v3/playlists" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.URL.Query().Get("mine") != "true" || r.URL.Query().Get("maxResults") != "50" {
					t.Errorf("unexpected query %s", r.URL.RawQuery)
				}
				calls++

				switch r.URL.Query().Get("pageToken") {
				case "":
					writeJSON(w, map[string]any{
						"nextPageToken": "page2",
						"items": []map[string]any{{
							"id": "PL1",
							"snippet": map[string]any{
								"title":       "Road Trip",
								"description": "Driving songs",
								"thumbnails": map[string]any{
									"default": map[string]any{"url": "https://i.ytimg.com/default.jpg"},
									"medium":  map[string]any{"url": "https://i.ytimg.com/medium.jpg"},
								},
							},
							"contentDetails": map[string]any{"itemCount": 12},
							"status":         map[string]any{"privacyStatus": "public"},
						}},
					})
				case "page2":
					writeJSON(w, map[string]any{
						"items": []map[string]any{{
							"id": "PL2",
							"snippet": map[string]any{
								"title":      "Focus",
								"thumbnails": map[string]any{"default": map[string]any{"url": "https://i.ytimg.com/d2.jpg"}},
							},
							"contentDetails": map[string]any{"itemCount": 3},
							"status":         map[string]any{"privacyStatus": "private"},
						}},
					})
				default:
					t.Errorf("unexpected page token %q", r.URL.Query().Get("pageToken"))
				}
			}))

			playlists, err := svc.ListPlaylists(context.Background())
			if err != nil {
				t.Fatalf("ListPlaylists() error = %v", err)
			}

			if calls != 2 {
				t.Errorf("expected 2 page requests, got %d", calls)
			}
			if len(playlists) != 2 {
				t.Fatalf("expected 2 playlists, got %d", len(playlists))
			}

			first := playlists[0]
			if first.ID != "PL1" || first.Title != "Road Trip" || first.ItemCount != 12 || first.PrivacyStatus != "public" {
				t.Errorf("unexpected first playlist %+v", first)
			}
			if first.Thumbnail != "https://i.ytimg.com/medium.jpg" {
				t.Errorf("expected medium thumbnail, got %s", first.Thumbnail)
			}
			if playlists[1].Thumbnail != "https://i.ytimg.com/d2.jpg" {
				t.Errorf("expected default thumbnail fallback, got %s", playlists[1].Thumbnail)
			}
		})

		t.Run("a failing page discards earlier pages", func(t *testing.T) {
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("pageToken") == "" {
					writeJSON(w, map[string]any{"nextPageToken": "p2", "items": []map[string]any{{"id": "PL1"}}})
					return
				}
				writeAPIError(w, http.StatusBadRequest, "invalidPageToken")
			}))

			playlists, err := svc.ListPlaylists(context.Background())
			if playlists != nil {
				t.Errorf("expected no partial result, got %v", playlists)
			}

			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("expected *TransportError, got %T: %v", err, err)
			}
			if te.Op != "playlists.list" || te.Status != http.StatusBadRequest || te.Reason != "invalidPageToken" {
				t.Errorf("unexpected transport error %+v", te)
			}
			if errors.Is(err, shared.ErrQuotaExceeded) {
				t.Error("bad request should not be reported as quota")
			}
		})
	})

	t.Run("ListItems", func(t *testing.T) {
		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/youtube/v3/playlistItems" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("playlistId") != "PL1" {
				t.Errorf("expected playlistId PL1, got %s", r.URL.Query().Get("playlistId"))
			}

			item := func(id, video, title string, pos int) map[string]any {
				return map[string]any{
					"id": id,
					"snippet": map[string]any{
						"title":                  title,
						"position":               pos,
						"videoOwnerChannelTitle": "Channel " + id,
						"resourceId":             map[string]any{"kind": "youtube#video", "videoId": video},
					},
				}
			}

			if r.URL.Query().Get("pageToken") == "" {
				writeJSON(w, map[string]any{
					"nextPageToken": "next",
					"items":         []map[string]any{item("m3", "v3", "Third", 2), item("m1", "v1", "First", 0)},
				})
				return
			}
			writeJSON(w, map[string]any{
				"items": []map[string]any{
					item("m2", "v2", "Second", 1),
					{"id": "m4", "snippet": map[string]any{"title": "Fourth", "position": 3}, "contentDetails": map[string]any{"videoId": "v4"}},
				},
			})
		}))

		items, err := svc.ListItems(context.Background(), "PL1")
		if err != nil {
			t.Fatalf("ListItems() error = %v", err)
		}

		if len(items) != 4 {
			t.Fatalf("expected 4 items, got %d", len(items))
		}
		for i, want := range []string{"v1", "v2", "v3", "v4"} {
			if items[i].VideoID != want || items[i].Position != i {
				t.Errorf("item %d = (%s, %d), want (%s, %d)", i, items[i].VideoID, items[i].Position, want, i)
			}
		}
		if items[0].ChannelTitle != "Channel m1" {
			t.Errorf("unexpected channel title %q", items[0].ChannelTitle)
		}
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		t.Run("sends title description and privacy", func(t *testing.T) {
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/youtube/v3/playlists" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}

				var body struct {
					Snippet struct {
						Title       string `json:"title"`
						Description string `json:"description"`
					} `json:"snippet"`
					Status struct {
						PrivacyStatus string `json:"privacyStatus"`
					} `json:"status"`
				}
				data, _ := io.ReadAll(r.Body)
				if err := json.Unmarshal(data, &body); err != nil {
					t.Errorf("invalid body: %v", err)
				}
				if body.Snippet.Title != "Road Trip" || body.Snippet.Description != "desc" || body.Status.PrivacyStatus != "private" {
					t.Errorf("unexpected body %s", data)
				}

				writeJSON(w, map[string]any{"id": "PLnew"})
			}))

			id, err := svc.CreatePlaylist(context.Background(), "Road Trip", "desc", "")
			if err != nil {
				t.Fatalf("CreatePlaylist() error = %v", err)
			}
			if id != "PLnew" {
				t.Errorf("expected PLnew, got %s", id)
			}
		})

		t.Run("quota exceeded is distinguishable", func(t *testing.T) {
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeAPIError(w, http.StatusForbidden, "quotaExceeded")
			}))

			_, err := svc.CreatePlaylist(context.Background(), "Road Trip", "desc", models.PrivacyPublic)
			if !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected ErrTransport, got %v", err)
			}
			if !errors.Is(err, shared.ErrQuotaExceeded) {
				t.Errorf("expected ErrQuotaExceeded, got %v", err)
			}
		})
	})

	t.Run("AddItem", func(t *testing.T) {
		t.Run("inserts a video resource", func(t *testing.T) {
			var requests int
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				var body struct {
					Snippet struct {
						PlaylistID string `json:"playlistId"`
						ResourceID struct {
							Kind    string `json:"kind"`
							VideoID string `json:"videoId"`
						} `json:"resourceId"`
					} `json:"snippet"`
				}
				json.NewDecoder(r.Body).Decode(&body)

				if body.Snippet.PlaylistID != "PLnew" || body.Snippet.ResourceID.VideoID != "v1" || body.Snippet.ResourceID.Kind != "youtube#video" {
					t.Errorf("unexpected body %+v", body)
				}
				writeJSON(w, map[string]any{"id": "member"})
			}))

			if err := svc.AddItem(context.Background(), "PLnew", "v1"); err != nil {
				t.Fatalf("AddItem() error = %v", err)
			}
			if requests != 1 {
				t.Errorf("expected a single request, got %d", requests)
			}
		})

		t.Run("failure is not retried", func(t *testing.T) {
			var requests int
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				writeAPIError(w, http.StatusNotFound, "videoNotFound")
			}))

			err := svc.AddItem(context.Background(), "PLnew", "gone")
			if err == nil {
				t.Fatal("expected error")
			}
			if requests != 1 {
				t.Errorf("expected a single attempt, got %d", requests)
			}
			if !errors.Is(err, shared.ErrPlaylistNotFound) {
				t.Errorf("404 should match ErrPlaylistNotFound, got %v", err)
			}
		})
	})

	t.Run("Profile", func(t *testing.T) {
		t.Run("returns the first channel", func(t *testing.T) {
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/youtube/v3/channels" || r.URL.Query().Get("mine") != "true" {
					t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
				}
				writeJSON(w, map[string]any{
					"items": []map[string]any{{
						"id":      "UC1",
						"snippet": map[string]any{"title": "Me", "thumbnails": map[string]any{"default": map[string]any{"url": "avatar"}}},
					}},
				})
			}))

			ch, err := svc.Profile(context.Background())
			if err != nil {
				t.Fatalf("Profile() error = %v", err)
			}
			if ch.ID != "UC1" || ch.Title != "Me" || ch.Thumbnail != "avatar" {
				t.Errorf("unexpected channel %+v", ch)
			}
		})

		t.Run("no channel", func(t *testing.T) {
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, map[string]any{"items": []any{}})
			}))

			if _, err := svc.Profile(context.Background()); !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected ErrTransport, got %v", err)
			}
		})
	})
}

func TestTransportError(t *testing.T) {
	tests := []struct {
		name      string
		err       *TransportError
		wantQuota bool
		wantMsg   string
	}{
		{name: "quota", err: &TransportError{Op: "playlists.insert", Status: 403, Reason: "quotaExceeded"}, wantQuota: true, wantMsg: "playlists.insert failed (status 403, quotaExceeded)"},
		{name: "rate limit", err: &TransportError{Op: "playlistItems.insert", Status: 403, Reason: "rateLimitExceeded"}, wantQuota: true},
		{name: "forbidden", err: &TransportError{Op: "playlists.insert", Status: 403, Reason: "forbidden"}},
		{name: "network", err: &TransportError{Op: "playlists.list", Err: io.ErrUnexpectedEOF}, wantMsg: "playlists.list failed: unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, shared.ErrTransport) {
				t.Error("every TransportError should match ErrTransport")
			}
			if got := errors.Is(tt.err, shared.ErrQuotaExceeded); got != tt.wantQuota {
				t.Errorf("errors.Is(ErrQuotaExceeded) = %v, want %v", got, tt.wantQuota)
			}
			if tt.wantMsg != "" && tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMsg)
			}
		})
	}

	t.Run("unwraps the cause", func(t *testing.T) {
		err := newTransportError("playlists.list", io.ErrUnexpectedEOF)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Error("expected cause to be reachable")
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if newTransportError("x", nil) != nil {
			t.Error("expected nil")
		}
	})
}
