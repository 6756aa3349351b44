package extract

import (
	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/services"
)

// Playlists maps grid items that open a playlist to [models.Playlist] values.
//
// The "VL" browse prefix is stripped from ids; items without a browse id (e.g. "New playlist") are skipped.
func Playlists(root any) []models.Playlist {
	var out []models.Playlist
	seen := map[string]bool{}
	for _, c := range Candidates(root) {
		if c.Type != TwoRowItem {
			continue
		}
		browseID := digString(c.Node, "navigationEndpoint", "browseEndpoint", "browseId")
		title := firstRun(c.Node["title"])
		if browseID == "" || title == "" {
			continue
		}
		id := services.PlaylistID(browseID)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, models.Playlist{ID: id, Title: title, Subtitle: text(c.Node["subtitle"])})
	}
	return out
}

// FirstVideoID returns the video id of the first track-like item in a search response, or "".
func FirstVideoID(root any) string {
	for _, track := range ParseTracks(root).Tracks {
		if track.VideoID != "" {
			return track.VideoID
		}
	}
	var id string
	Walk(root, func(m map[string]any) bool {
		if id == "" {
			id = digString(m, "watchEndpoint", "videoId")
		}
		return id == ""
	})
	return id
}
