// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two views over one authorized session:
//  1. [PlaylistsView] : Browse the account's playlists, mark a selection and extract it to backup records
//  2. [QueueView] : Load backup records from a folder, prune the pending queue and restore it
//
// Both views share an activity pane fed by the [tasks.EventLog]. Long-running work runs in tea.Cmds and reports
// back through the Msg union type, so the model is only ever mutated inside Update.
//
// Keyboard navigation uses vim-style bindings with contextual help displayed via charmbracelet/bubbles/help.
package ui
