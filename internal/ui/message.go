package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPlaylistsFetched MsgKind = iota
	MsgEvent
	MsgExtractComplete
	MsgQueueLoaded
	MsgRestoreComplete
)

type playlistsFetched struct {
	playlists []models.PlaylistSummary
	err       error
}

type extractComplete struct {
	result *tasks.ExtractResult
	err    error
}

type queueLoaded struct {
	added []models.RestorationJob
	err   error
}

type restoreComplete struct {
	summary *tasks.RestoreSummary
	err     error
}

// playlistsFetchedMsg is the constructor for [MsgPlaylistsFetched]
func playlistsFetchedMsg(playlists []models.PlaylistSummary, err error) Msg {
	return Msg{kind: MsgPlaylistsFetched, data: playlistsFetched{playlists, err}}
}

// eventMsg is the constructor for [MsgEvent]
func eventMsg(event tasks.Event) Msg {
	return Msg{kind: MsgEvent, data: event}
}

// extractCompleteMsg is the constructor for [MsgExtractComplete]
func extractCompleteMsg(result *tasks.ExtractResult, err error) Msg {
	return Msg{kind: MsgExtractComplete, data: extractComplete{result, err}}
}

// queueLoadedMsg is the constructor for [MsgQueueLoaded]
func queueLoadedMsg(added []models.RestorationJob, err error) Msg {
	return Msg{kind: MsgQueueLoaded, data: queueLoaded{added, err}}
}

// restoreCompleteMsg is the constructor for [MsgRestoreComplete]
func restoreCompleteMsg(summary *tasks.RestoreSummary, err error) Msg {
	return Msg{kind: MsgRestoreComplete, data: restoreComplete{summary, err}}
}
