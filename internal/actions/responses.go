package actions

import "github.com/HuLaxx/Shiftify-sub000/internal/models"

// VerifyResponse is returned by the verify action.
type VerifyResponse struct {
	OK       bool   `json:"ok"`
	AuthUser string `json:"authUser"`
}

// PlaylistsResponse is returned by the list_playlists action.
type PlaylistsResponse struct {
	Playlists []models.Playlist `json:"playlists"`
	AuthUser  string            `json:"authUser"`
}

// TracksResponse is returned by the get_playlist_tracks action.
type TracksResponse struct {
	PlaylistID     string             `json:"playlistId"`
	Tracks         []models.Track     `json:"tracks"`
	Count          int                `json:"count"`
	Pages          int                `json:"pages"`
	Truncated      bool               `json:"truncated"`
	MissingTitle   int                `json:"missingTitle"`
	MissingVideoID int                `json:"missingVideoId"`
	Diagnostics    models.Diagnostics `json:"diagnostics"`
	AuthUser       string             `json:"authUser"`
}

// Result converts the response back into a collection result.
func (r *TracksResponse) Result() *models.CollectResult {
	return &models.CollectResult{
		Tracks:      r.Tracks,
		Pages:       r.Pages,
		Truncated:   r.Truncated,
		Diagnostics: r.Diagnostics,
	}
}

// SearchResponse is returned by the search action. VideoID is null when nothing matched.
type SearchResponse struct {
	VideoID  *string `json:"videoId"`
	AuthUser string  `json:"authUser"`
}

// LikeResponse is returned by the like and remove_like actions.
type LikeResponse struct {
	Success  bool   `json:"success"`
	AuthUser string `json:"authUser"`
}

// ErrorResponse is the envelope for any failed action.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newTracksResponse(id, authUser string, result *models.CollectResult) *TracksResponse {
	tracks := result.Tracks
	if tracks == nil {
		tracks = []models.Track{}
	}
	return &TracksResponse{
		PlaylistID:     id,
		Tracks:         tracks,
		Count:          len(tracks),
		Pages:          result.Pages,
		Truncated:      result.Truncated,
		MissingTitle:   result.MissingTitle(),
		MissingVideoID: result.MissingVideoID(),
		Diagnostics:    result.Diagnostics,
		AuthUser:       authUser,
	}
}
