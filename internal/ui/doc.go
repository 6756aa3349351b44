// Package ui implements an interactive terminal browser for YouTube Music playlists using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [PlaylistListView] : liked playlists, with Liked Music first
//  2. [CollectingView] : pagination progress while tracks are collected
//  3. [TrackListView] : collected tracks with a diagnostics footer
//
// Progress updates flow through a channel from the collector, so the view stays responsive during long runs.
// Leaving the collecting view cancels the run.
//
// Lists navigate with the bubbles/list bindings; enter, esc, r and q are handled by the model, with per-view help rendered by bubbles/help.
package ui
