// package services defines the YouTube Music API client
package services

import (
	"context"
)

// Upstream endpoints.
const (
	EndpointBrowse     = "browse"
	EndpointSearch     = "search"
	EndpointLike       = "like/like"
	EndpointRemoveLike = "like/removelike"
)

// Well-known browse ids.
const (
	LikedMusicID         = "LM"
	LikedMusicTitle      = "Liked Music"
	LibraryLandingID     = "FEmusic_library_landing"
	LikedPlaylistsID     = "FEmusic_liked_playlists"
	LikedVideosBrowseID  = "FEmusic_liked_videos"
	playlistBrowsePrefix = "VL"
)

// Music is the set of upstream operations the dispatcher and collector use.
//
// [Session] implements it; tests substitute fakes.
type Music interface {
	// Browse fetches the first page of a browse id.
	Browse(ctx context.Context, browseID string) (any, error)

	// Continue fetches the page behind a continuation token.
	// browseID is sent alongside the token only when non-empty.
	Continue(ctx context.Context, token, browseID string) (any, error)

	// Search runs a song search.
	Search(ctx context.Context, query string) (any, error)

	// Like rates a video as liked.
	Like(ctx context.Context, videoID string) error

	// RemoveLike clears the rating of a video.
	RemoveLike(ctx context.Context, videoID string) error

	// AuthUser returns the account index that last succeeded, or the preferred one.
	AuthUser() string
}

// ToggleBrowsePrefix adds the "VL" playlist prefix to id, or removes it when present.
func ToggleBrowsePrefix(id string) string {
	if rest, ok := cutPrefix(id); ok {
		return rest
	}
	return playlistBrowsePrefix + id
}

// PlaylistID strips the "VL" browse prefix.
func PlaylistID(browseID string) string {
	if rest, ok := cutPrefix(browseID); ok {
		return rest
	}
	return browseID
}

func cutPrefix(id string) (string, bool) {
	if len(id) > len(playlistBrowsePrefix) && id[:len(playlistBrowsePrefix)] == playlistBrowsePrefix {
		return id[len(playlistBrowsePrefix):], true
	}
	return id, false
}
