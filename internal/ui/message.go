package ui

import (
	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/tasks"
)

// playlistsFetchedMsg carries the playlist listing.
type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

// progressMsg carries one collector update for the run it belongs to.
type progressMsg struct {
	run    *collection
	update tasks.ProgressUpdate
}

// collectedMsg ends a run.
type collectedMsg struct {
	run    *collection
	result *models.CollectResult
	err    error
}

// collection is one in-flight track collection.
type collection struct {
	playlist models.Playlist
	progress chan tasks.ProgressUpdate
	done     chan collectedMsg
	cancel   func()
}
