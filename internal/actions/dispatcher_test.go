package actions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/HuLaxx/Shiftify-sub000/internal/services"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

// fakeMusic serves canned responses by browse id.
type fakeMusic struct {
	browse     map[string]any
	search     any
	err        error
	authUser   string
	browsed    []string
	liked      []string
	removed    []string
	searchedAs string
}

func (f *fakeMusic) Browse(_ context.Context, browseID string) (any, error) {
	f.browsed = append(f.browsed, browseID)
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.browse[browseID]; ok {
		return v, nil
	}
	return map[string]any{}, nil
}

func (f *fakeMusic) Continue(context.Context, string, string) (any, error) {
	return map[string]any{}, nil
}

func (f *fakeMusic) Search(_ context.Context, query string) (any, error) {
	f.searchedAs = query
	return f.search, f.err
}

func (f *fakeMusic) Like(_ context.Context, videoID string) error {
	f.liked = append(f.liked, videoID)
	return f.err
}

func (f *fakeMusic) RemoveLike(_ context.Context, videoID string) error {
	f.removed = append(f.removed, videoID)
	return f.err
}

func (f *fakeMusic) AuthUser() string { return f.authUser }

func listItem(id string) map[string]any {
	return map[string]any{"musicResponsiveListItemRenderer": map[string]any{
		"flexColumns": []any{
			map[string]any{"musicResponsiveListItemFlexColumnRenderer": map[string]any{
				"text": map[string]any{"runs": []any{map[string]any{"text": "Song " + id}}},
			}},
		},
		"playlistItemData": map[string]any{"videoId": id},
	}}
}

func newFakeDispatcher(music *fakeMusic) (*Dispatcher, *[]string) {
	var sessions []string
	d := NewDispatcherWithFactory(func(cookies, authUser string) (services.Music, error) {
		if _, err := services.ParseCredentials(cookies); err != nil {
			return nil, err
		}
		sessions = append(sessions, authUser)
		if music.authUser == "" {
			music.authUser = authUser
		}
		return music, nil
	}, shared.CollectorConfig{}, nil)
	return d, &sessions
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	const cookies = "SAPISID=abc"

	t.Run("validation", func(t *testing.T) {
		tt := []struct {
			name     string
			req      Request
			sentinel error
		}{
			{"unknown action", Request{Action: "delete_everything", Cookies: cookies}, shared.ErrUnknownAction},
			{"empty action", Request{Cookies: cookies}, shared.ErrUnknownAction},
			{"empty cookies", Request{Action: ActionVerify, Cookies: " cookie: \n"}, shared.ErrEmptyCredential},
			{"search without query", Request{Action: ActionSearch, Cookies: cookies, Params: map[string]any{"query": "  "}}, shared.ErrMissingArgument},
			{"like without videoId", Request{Action: ActionLike, Cookies: cookies}, shared.ErrMissingArgument},
			{"remove_like with non-string videoId", Request{Action: ActionRemoveLike, Cookies: cookies, Params: map[string]any{"videoId": 5}}, shared.ErrMissingArgument},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				music := &fakeMusic{}
				d, sessions := newFakeDispatcher(music)

				_, err := d.Dispatch(ctx, tc.req)
				if !shared.IsValidationError(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if !errors.Is(err, tc.sentinel) {
					t.Errorf("expected %v, got %v", tc.sentinel, err)
				}
				if len(music.browsed)+len(music.liked) != 0 {
					t.Error("no upstream call should be made")
				}
				if tc.sentinel != shared.ErrEmptyCredential && len(*sessions) != 0 {
					t.Error("credentials should not be derived for invalid params")
				}
			})
		}
	})

	t.Run("verify", func(t *testing.T) {
		music := &fakeMusic{authUser: "1"}
		d, sessions := newFakeDispatcher(music)

		resp, err := d.Dispatch(ctx, Request{Action: ActionVerify, Cookies: cookies})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v := resp.(*VerifyResponse)
		if !v.OK || v.AuthUser != "1" {
			t.Errorf("unexpected response %+v", v)
		}
		if music.browsed[0] != services.LibraryLandingID {
			t.Errorf("unexpected browse id %s", music.browsed[0])
		}
		if (*sessions)[0] != "0" {
			t.Errorf("expected default auth user 0, got %s", (*sessions)[0])
		}
	})

	t.Run("list_playlists", func(t *testing.T) {
		grid := func(ids ...string) map[string]any {
			items := []any{}
			for _, id := range ids {
				items = append(items, map[string]any{"musicTwoRowItemRenderer": map[string]any{
					"title":              map[string]any{"runs": []any{map[string]any{"text": "Title " + id}}},
					"navigationEndpoint": map[string]any{"browseEndpoint": map[string]any{"browseId": "VL" + id}},
				}})
			}
			return map[string]any{"items": items}
		}

		t.Run("prepends liked music", func(t *testing.T) {
			music := &fakeMusic{browse: map[string]any{services.LikedPlaylistsID: grid("PL1", "PL2")}}
			d, _ := newFakeDispatcher(music)

			resp, err := d.Dispatch(ctx, Request{Action: ActionListPlaylists, Cookies: cookies, AuthUser: "2"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			r := resp.(*PlaylistsResponse)
			if len(r.Playlists) != 3 || r.Playlists[0].ID != "LM" || r.Playlists[0].Title != "Liked Music" {
				t.Errorf("unexpected playlists %+v", r.Playlists)
			}
			if r.Playlists[1].ID != "PL1" {
				t.Errorf("expected VL prefix stripped, got %s", r.Playlists[1].ID)
			}
			if r.AuthUser != "2" {
				t.Errorf("unexpected auth user %s", r.AuthUser)
			}
		})

		t.Run("does not duplicate liked music", func(t *testing.T) {
			music := &fakeMusic{browse: map[string]any{services.LikedPlaylistsID: grid("LM", "PL1")}}
			d, _ := newFakeDispatcher(music)

			resp, _ := d.Dispatch(ctx, Request{Action: ActionListPlaylists, Cookies: cookies})
			if r := resp.(*PlaylistsResponse); len(r.Playlists) != 2 {
				t.Errorf("expected 2 playlists, got %+v", r.Playlists)
			}
		})
	})

	t.Run("get_playlist_tracks", func(t *testing.T) {
		seed := map[string]any{"contents": []any{listItem("a"), listItem("b"), listItem("c")}}

		tt := []struct {
			name      string
			params    map[string]any
			wantCount int
			wantID    string
		}{
			{"defaults to liked music", nil, 3, "LM"},
			{"numeric limit", map[string]any{"id": "LM", "limit": float64(2)}, 2, "LM"},
			{"string limit", map[string]any{"limit": "1"}, 1, "LM"},
			{"invalid limit uses default", map[string]any{"limit": "lots"}, 3, "LM"},
			{"limit above ceiling", map[string]any{"limit": float64(1e12)}, 3, "LM"},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				music := &fakeMusic{browse: map[string]any{"LM": seed}}
				d, _ := newFakeDispatcher(music)

				resp, err := d.Dispatch(ctx, Request{Action: ActionTracks, Cookies: cookies, Params: tc.params})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				r := resp.(*TracksResponse)
				if r.Count != tc.wantCount || len(r.Tracks) != tc.wantCount {
					t.Errorf("expected %d tracks, got %d", tc.wantCount, r.Count)
				}
				if r.PlaylistID != tc.wantID || music.browsed[0] != tc.wantID {
					t.Errorf("unexpected playlist id %s (browsed %v)", r.PlaylistID, music.browsed)
				}
				if r.Pages != 1 || r.Diagnostics.StopReason == "" {
					t.Errorf("unexpected metadata %+v", r)
				}
			})
		}

		t.Run("envelope fields", func(t *testing.T) {
			music := &fakeMusic{}
			d, _ := newFakeDispatcher(music)

			resp, err := d.Dispatch(ctx, Request{Action: ActionTracks, Cookies: cookies, Params: map[string]any{"id": "PL9"}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data, _ := json.Marshal(resp)
			var envelope map[string]any
			_ = json.Unmarshal(data, &envelope)
			for _, key := range []string{"tracks", "count", "pages", "truncated", "missingTitle", "missingVideoId", "diagnostics", "authUser"} {
				if _, ok := envelope[key]; !ok {
					t.Errorf("envelope missing %q", key)
				}
			}
			if tracks, ok := envelope["tracks"].([]any); !ok || len(tracks) != 0 {
				t.Errorf("expected empty tracks array, got %v", envelope["tracks"])
			}
		})
	})

	t.Run("search", func(t *testing.T) {
		t.Run("found", func(t *testing.T) {
			music := &fakeMusic{search: map[string]any{"contents": []any{listItem("hit")}}}
			d, _ := newFakeDispatcher(music)

			resp, err := d.Dispatch(ctx, Request{Action: ActionSearch, Cookies: cookies, Params: map[string]any{"query": " wildfire "}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			r := resp.(*SearchResponse)
			if r.VideoID == nil || *r.VideoID != "hit" {
				t.Errorf("unexpected video id %v", r.VideoID)
			}
			if music.searchedAs != "wildfire" {
				t.Errorf("expected trimmed query, got %q", music.searchedAs)
			}
		})

		t.Run("nothing found is null", func(t *testing.T) {
			music := &fakeMusic{search: map[string]any{}}
			d, _ := newFakeDispatcher(music)

			resp, err := d.Dispatch(ctx, Request{Action: ActionSearch, Cookies: cookies, Params: map[string]any{"query": "zzz"}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data, _ := json.Marshal(resp)
			if string(data) != `{"videoId":null,"authUser":"0"}` {
				t.Errorf("unexpected JSON %s", data)
			}
		})
	})

	t.Run("like and remove_like", func(t *testing.T) {
		music := &fakeMusic{}
		d, _ := newFakeDispatcher(music)

		for _, action := range []string{ActionLike, ActionRemoveLike} {
			resp, err := d.Dispatch(ctx, Request{Action: action, Cookies: cookies, Params: map[string]any{"videoId": "v1"}})
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", action, err)
			}
			if !resp.(*LikeResponse).Success {
				t.Errorf("%s: expected success", action)
			}
		}
		if len(music.liked) != 1 || len(music.removed) != 1 {
			t.Errorf("unexpected calls liked=%v removed=%v", music.liked, music.removed)
		}
	})

	t.Run("upstream errors are not validation errors", func(t *testing.T) {
		music := &fakeMusic{err: &shared.UpstreamError{Status: 500, Body: "oops"}}
		d, _ := newFakeDispatcher(music)

		_, err := d.Dispatch(ctx, Request{Action: ActionVerify, Cookies: cookies})
		if err == nil || shared.IsValidationError(err) {
			t.Errorf("expected execution failure, got %v", err)
		}
	})
}

// TestDispatchLikedMusicFallback drives a real client against a fake upstream.
func TestDispatchLikedMusicFallback(t *testing.T) {
	var (
		mu       sync.Mutex
		browsed  []string
		authUser []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		mu.Lock()
		id, _ := body["browseId"].(string)
		browsed = append(browsed, id)
		authUser = append(authUser, r.Header.Get("X-Goog-AuthUser"))
		mu.Unlock()

		if id == "VLLM" {
			_ = json.NewEncoder(w).Encode(map[string]any{"contents": []any{listItem("liked1"), listItem("liked2")}})
			return
		}
		_, _ = w.Write([]byte(`{"contents":{}}`))
	}))
	defer server.Close()

	cfg := shared.DefaultConfig()
	cfg.YouTube.BaseURL = server.URL
	client := services.NewClient(cfg.YouTube, server.Client(), nil)
	d := NewDispatcher(client, cfg.Collector, nil)

	resp, err := d.Dispatch(context.Background(), Request{
		Action:   ActionTracks,
		Cookies:  "cookie: SAPISID=abc123; VISITOR_INFO1_LIVE=xyz\n",
		AuthUser: "1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := resp.(*TracksResponse)
	if r.Count != 2 {
		t.Errorf("expected 2 tracks, got %d", r.Count)
	}
	if r.Diagnostics.BrowseID != "VLLM" || r.Diagnostics.AlternateBrowseID != "VLLM" {
		t.Errorf("unexpected diagnostics %+v", r.Diagnostics)
	}
	if len(browsed) != 2 || browsed[0] != "LM" || browsed[1] != "VLLM" {
		t.Errorf("unexpected browse sequence %v", browsed)
	}
	if authUser[0] != "1" || r.AuthUser != "1" {
		t.Errorf("expected auth user 1, got %v / %s", authUser, r.AuthUser)
	}
}

func TestLibraryTrackLimit(t *testing.T) {
	tt := []struct {
		name       string
		configured int
		requested  int
		want       int
	}{
		{"unset config uses ceiling", 0, 0, 20000},
		{"request above ceiling", 0, 50000, 20000},
		{"request within config", 500, 120, 120},
		{"request above config", 500, 900, 500},
		{"config above ceiling", 90000, 0, 20000},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			lib := NewLibrary(&fakeMusic{}, shared.CollectorConfig{MaxTracks: tc.configured}, nil)
			if got := lib.TrackLimit(tc.requested); got != tc.want {
				t.Errorf("TrackLimit(%d) = %d, want %d", tc.requested, got, tc.want)
			}
		})
	}
}
