package actions

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/HuLaxx/Shiftify-sub000/internal/services"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

// Action names.
const (
	ActionVerify        = "verify"
	ActionListPlaylists = "list_playlists"
	ActionTracks        = "get_playlist_tracks"
	ActionSearch        = "search"
	ActionLike          = "like"
	ActionRemoveLike    = "remove_like"
)

// Actions lists every supported action.
var Actions = []string{ActionVerify, ActionListPlaylists, ActionTracks, ActionSearch, ActionLike, ActionRemoveLike}

// Request is one call to the dispatcher.
type Request struct {
	Action   string         `json:"action"`
	Cookies  string         `json:"cookies"`
	AuthUser string         `json:"authUser"`
	Params   map[string]any `json:"params"`
}

// SessionFactory derives a session from raw cookies and a preferred account index.
type SessionFactory func(cookies, authUser string) (services.Music, error)

// Dispatcher routes requests to a fresh [Library] per call.
type Dispatcher struct {
	newSession SessionFactory
	collector  shared.CollectorConfig
	logger     *log.Logger
}

// NewDispatcher creates a [Dispatcher] whose sessions come from client.
func NewDispatcher(client *services.Client, cfg shared.CollectorConfig, logger *log.Logger) *Dispatcher {
	return NewDispatcherWithFactory(func(cookies, authUser string) (services.Music, error) {
		return client.NewSession(cookies, authUser)
	}, cfg, logger)
}

// NewDispatcherWithFactory creates a [Dispatcher] with a custom session source.
func NewDispatcherWithFactory(factory SessionFactory, cfg shared.CollectorConfig, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Dispatcher{newSession: factory, collector: cfg, logger: logger}
}

// Dispatch validates req and runs its action.
//
// The returned value is one of the *Response types in this package.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (any, error) {
	action := strings.TrimSpace(req.Action)
	if !slices.Contains(Actions, action) {
		return nil, shared.NewValidationError(shared.ErrUnknownAction, "unknown action %q", req.Action)
	}

	var (
		query   string
		videoID string
	)
	switch action {
	case ActionSearch:
		if query = stringParam(req.Params, "query"); query == "" {
			return nil, shared.NewValidationError(shared.ErrMissingArgument, "query is required")
		}
	case ActionLike, ActionRemoveLike:
		if videoID = stringParam(req.Params, "videoId"); videoID == "" {
			return nil, shared.NewValidationError(shared.ErrMissingArgument, "videoId is required")
		}
	}

	authUser := strings.TrimSpace(req.AuthUser)
	if authUser == "" {
		authUser = "0"
	}

	music, err := d.newSession(req.Cookies, authUser)
	if err != nil {
		return nil, err
	}
	lib := NewLibrary(music, d.collector, d.logger.With("action", action))
	d.logger.Debug("dispatching", "action", action, "auth_user", authUser)

	switch action {
	case ActionVerify:
		return lib.Verify(ctx)

	case ActionListPlaylists:
		playlists, err := lib.Playlists(ctx)
		if err != nil {
			return nil, err
		}
		return &PlaylistsResponse{Playlists: playlists, AuthUser: lib.AuthUser()}, nil

	case ActionTracks:
		id := stringParam(req.Params, "id")
		if id == "" {
			id = services.LikedMusicID
		}
		result, err := lib.Tracks(ctx, nil, id, limitParam(req.Params))
		if err != nil {
			return nil, err
		}
		return newTracksResponse(id, lib.AuthUser(), result), nil

	case ActionSearch:
		found, err := lib.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		resp := &SearchResponse{AuthUser: lib.AuthUser()}
		if found != "" {
			resp.VideoID = &found
		}
		return resp, nil

	case ActionLike:
		if err := lib.Like(ctx, videoID); err != nil {
			return nil, err
		}
		return &LikeResponse{Success: true, AuthUser: lib.AuthUser()}, nil

	case ActionRemoveLike:
		if err := lib.RemoveLike(ctx, videoID); err != nil {
			return nil, err
		}
		return &LikeResponse{Success: true, AuthUser: lib.AuthUser()}, nil
	}

	return nil, fmt.Errorf("%w: %s", shared.ErrNotImplemented, action)
}

func stringParam(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return strings.TrimSpace(s)
}

// limitParam reads "limit" as a number or numeric string; anything else yields 0 (the default).
func limitParam(params map[string]any) int {
	switch v := params["limit"].(type) {
	case float64:
		if v > math.MaxInt32 {
			return math.MaxInt32
		}
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
