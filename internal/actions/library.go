package actions

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/HuLaxx/Shiftify-sub000/internal/extract"
	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/services"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
	"github.com/HuLaxx/Shiftify-sub000/internal/tasks"
)

// Library runs typed operations for one session.
//
// The dispatcher, CLI and TUI all go through it.
type Library struct {
	music     services.Music
	collector *tasks.Collector
	maxTracks int
}

// NewLibrary binds music to the collector limits in cfg.
func NewLibrary(music services.Music, cfg shared.CollectorConfig, logger *log.Logger) *Library {
	return &Library{
		music:     music,
		collector: tasks.NewCollector(music, cfg, logger),
		maxTracks: tasks.ClampMaxTracks(cfg.MaxTracks),
	}
}

// TrackLimit resolves a requested per-playlist limit against the configured maximum.
func (l *Library) TrackLimit(limit int) int {
	if limit <= 0 || limit > l.maxTracks {
		return l.maxTracks
	}
	return limit
}

// AuthUser returns the account index the session is using.
func (l *Library) AuthUser() string { return l.music.AuthUser() }

// Collector returns the collector bound to the session.
func (l *Library) Collector() *tasks.Collector { return l.collector }

// Verify probes the library landing page.
func (l *Library) Verify(ctx context.Context) (*VerifyResponse, error) {
	if _, err := l.music.Browse(ctx, services.LibraryLandingID); err != nil {
		return nil, err
	}
	return &VerifyResponse{OK: true, AuthUser: l.music.AuthUser()}, nil
}

// Playlists lists liked playlists with Liked Music first.
func (l *Library) Playlists(ctx context.Context) ([]models.Playlist, error) {
	data, err := l.music.Browse(ctx, services.LikedPlaylistsID)
	if err != nil {
		return nil, err
	}

	playlists := extract.Playlists(data)
	hasLiked := slices.ContainsFunc(playlists, func(p models.Playlist) bool {
		return p.ID == services.LikedMusicID
	})
	if !hasLiked {
		playlists = append([]models.Playlist{{ID: services.LikedMusicID, Title: services.LikedMusicTitle}}, playlists...)
	}
	return playlists, nil
}

// Tracks collects the tracks of playlist id, at most limit of them.
//
// An empty id means Liked Music; a limit outside 1..max uses the configured ceiling.
func (l *Library) Tracks(ctx context.Context, progress chan<- tasks.ProgressUpdate, id string, limit int) (*models.CollectResult, error) {
	if id == "" {
		id = services.LikedMusicID
	}
	return l.collector.Collect(ctx, progress, id, l.TrackLimit(limit))
}

// Search returns the video id of the first result, or "" when nothing matched.
func (l *Library) Search(ctx context.Context, query string) (string, error) {
	data, err := l.music.Search(ctx, query)
	if err != nil {
		return "", err
	}
	return extract.FirstVideoID(data), nil
}

// Like rates videoID as liked.
func (l *Library) Like(ctx context.Context, videoID string) error {
	return l.music.Like(ctx, videoID)
}

// RemoveLike clears the rating of videoID.
func (l *Library) RemoveLike(ctx context.Context, videoID string) error {
	return l.music.RemoveLike(ctx, videoID)
}
