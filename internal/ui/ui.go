package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/services"
	"github.com/desertthunder/tubesync/internal/shared"
	"github.com/desertthunder/tubesync/internal/storage"
	"github.com/desertthunder/tubesync/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistsView ViewState = iota
	QueueView
)

const activityLines = 6

// Options contains the collaborators of a [Model].
type Options struct {
	Gateway    services.Gateway
	Log        *tasks.EventLog
	Extractor  *tasks.Extractor
	Queue      *tasks.Queue
	ExtractDir storage.Folder // Destination of extracted records
	RestoreDir storage.Folder // Folder scanned for records to restore
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	opts         Options
	view         ViewState
	width        int
	height       int
	playlistList list.Model
	queueList    list.Model
	playlists    []models.PlaylistSummary
	busy         string
	status       string
	err          error
	events       <-chan tasks.Event
	unsubscribe  func()
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Log == nil {
		opts.Log = tasks.NewEventLog(nil)
	}
	if opts.Extractor == nil {
		opts.Extractor = tasks.NewExtractor(opts.Log, nil)
	}
	if opts.Queue == nil {
		opts.Queue = tasks.NewQueue(tasks.QueueOpts{Log: opts.Log})
	}

	events, unsubscribe := opts.Log.Subscribe(64)
	return &Model{
		ctx:          ctx,
		opts:         opts,
		view:         PlaylistsView,
		playlistList: newList("Your Playlists"),
		queueList:    newList("Restore Queue"),
		events:       events,
		unsubscribe:  unsubscribe,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

// Close stops the activity subscription.
func (m *Model) Close() {
	m.unsubscribe()
}

// Init fetches the playlist catalog and starts listening for activity.
func (m *Model) Init() tea.Cmd {
	m.busy = "Loading playlists..."
	return tea.Batch(m.fetchPlaylists(), m.waitForEvent())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := max(msg.Height-activityLines-6, 4)
		m.playlistList.SetSize(msg.Width-4, listHeight)
		m.queueList.SetSize(msg.Width-4, listHeight)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPlaylistsFetched:
		data := msg.data.(playlistsFetched)
		m.busy = ""
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.playlists = data.playlists
		cmd := m.playlistList.SetItems(playlistItems(data.playlists))
		m.status = fmt.Sprintf("%d playlists", len(data.playlists))
		return m, cmd

	case MsgEvent:
		m.refreshJobs()
		return m, m.waitForEvent()

	case MsgExtractComplete:
		data := msg.data.(extractComplete)
		m.busy = ""
		m.err = data.err
		if data.result != nil {
			m.status = fmt.Sprintf("Extracted %d of %d playlists", data.result.Succeeded, len(data.result.Results))
		}
		return m, nil

	case MsgQueueLoaded:
		data := msg.data.(queueLoaded)
		m.busy = ""
		m.err = data.err
		m.status = fmt.Sprintf("Loaded %d playlists", len(data.added))
		m.refreshJobs()
		return m, nil

	case MsgRestoreComplete:
		data := msg.data.(restoreComplete)
		m.busy = ""
		m.err = data.err
		if data.summary != nil {
			m.status = fmt.Sprintf("Restored %d playlists, %d failed", data.summary.Done, data.summary.Failed)
		}
		m.refreshJobs()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.swap):
		if m.view == PlaylistsView {
			m.view = QueueView
			m.refreshJobs()
		} else {
			m.view = PlaylistsView
		}
		return m, nil
	}

	switch m.view {
	case PlaylistsView:
		return m.handlePlaylistKeys(msg)
	case QueueView:
		return m.handleQueueKeys(msg)
	}
	return m, nil
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.toggle):
		idx := m.playlistList.Index()
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			item.selected = !item.selected
			return m, m.playlistList.SetItem(idx, item)
		}
		return m, nil
	case key.Matches(msg, m.keys.all):
		return m, m.selectAll(len(m.selectedIDs()) < len(m.playlistList.Items()))
	case key.Matches(msg, m.keys.extract):
		if m.busy != "" {
			return m, nil
		}
		m.busy = "Extracting playlists..."
		return m, m.extract(m.selectedIDs())
	case key.Matches(msg, m.keys.refresh):
		if m.busy != "" {
			return m, nil
		}
		m.busy = "Loading playlists..."
		return m, m.fetchPlaylists()
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleQueueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.open):
		if m.busy != "" {
			return m, nil
		}
		m.busy = "Reading records..."
		return m, m.loadFolder()
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.queueList.SelectedItem().(jobItem); ok && m.opts.Queue.Remove(item.job.ID) {
			m.status = fmt.Sprintf("Removed %s", item.job.Name)
			m.refreshJobs()
		}
		return m, nil
	case key.Matches(msg, m.keys.clear):
		n := m.opts.Queue.ClearPending()
		m.status = fmt.Sprintf("Cleared %d pending playlists", n)
		m.refreshJobs()
		return m, nil
	case key.Matches(msg, m.keys.restore):
		if m.busy != "" {
			return m, nil
		}
		m.busy = "Restoring playlists..."
		return m, m.restore()
	}

	var cmd tea.Cmd
	m.queueList, cmd = m.queueList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistsView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case QueueView:
		m.queueList, cmd = m.queueList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectAll(selected bool) tea.Cmd {
	items := m.playlistList.Items()
	for i, it := range items {
		if item, ok := it.(playlistItem); ok {
			item.selected = selected
			items[i] = item
		}
	}
	return m.playlistList.SetItems(items)
}

// selectedIDs returns the marked playlists in catalog order.
func (m *Model) selectedIDs() []string {
	var ids []string
	for _, it := range m.playlistList.Items() {
		if item, ok := it.(playlistItem); ok && item.selected {
			ids = append(ids, item.playlist.ID)
		}
	}
	return ids
}

func (m *Model) refreshJobs() {
	m.queueList.SetItems(jobItems(m.opts.Queue.Jobs()))
}

func (m *Model) fetchPlaylists() tea.Cmd {
	ctx, gw := m.ctx, m.opts.Gateway
	return func() tea.Msg {
		if gw == nil {
			return playlistsFetchedMsg(nil, fmt.Errorf("%w: sign in first", shared.ErrNotAuthenticated))
		}
		playlists, err := gw.ListPlaylists(ctx)
		return playlistsFetchedMsg(playlists, err)
	}
}

func (m *Model) extract(ids []string) tea.Cmd {
	ctx, gw, catalog, dest, ex := m.ctx, m.opts.Gateway, m.playlists, m.opts.ExtractDir, m.opts.Extractor
	return func() tea.Msg {
		result, err := ex.Extract(ctx, gw, catalog, ids, dest)
		return extractCompleteMsg(result, err)
	}
}

func (m *Model) loadFolder() tea.Cmd {
	ctx, q, folder := m.ctx, m.opts.Queue, m.opts.RestoreDir
	return func() tea.Msg {
		added, err := q.EnqueueFolder(ctx, folder)
		return queueLoadedMsg(added, err)
	}
}

func (m *Model) restore() tea.Cmd {
	ctx, q, gw := m.ctx, m.opts.Queue, m.opts.Gateway
	return func() tea.Msg {
		summary, err := q.ProcessQueue(ctx, gw)
		return restoreCompleteMsg(summary, err)
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(event)
	}
}

// View renders the active list above the shared activity pane.
func (m *Model) View() string {
	var body string
	var helpKeys []key.Binding
	switch m.view {
	case PlaylistsView:
		body = m.playlistList.View()
		helpKeys = []key.Binding{m.keys.toggle, m.keys.all, m.keys.extract, m.keys.refresh, m.keys.swap, m.keys.quit}
	case QueueView:
		body = m.queueList.View()
		helpKeys = []key.Binding{m.keys.open, m.keys.remove, m.keys.clear, m.keys.restore, m.keys.swap, m.keys.quit}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.renderStatus(),
		m.renderActivity(),
		m.help.ShortHelpView(helpKeys),
	)
}

func (m *Model) renderStatus() string {
	switch {
	case m.busy != "":
		return styles.warn.Render(m.busy)
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	default:
		return styles.help.Render(m.status)
	}
}

func (m *Model) renderActivity() string {
	events := m.opts.Log.Tail(activityLines)
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, styles.Severity(e.Severity).Render(e.String()))
	}
	return styles.pane.Width(max(m.width-4, 20)).Render(strings.Join(lines, "\n"))
}
