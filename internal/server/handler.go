package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/HuLaxx/Shiftify-sub000/internal/actions"
	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/repositories"
	"github.com/HuLaxx/Shiftify-sub000/internal/services"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

// Dispatcher runs one action request. [actions.Dispatcher] implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, req actions.Request) (any, error)
}

// Recorder stores finished collections. [repositories.RunRecorder] implements it.
type Recorder interface {
	Record(playlistID, authUser string, result *models.CollectResult, collectErr error) (*models.Run, error)
}

// APIHandler serves the action endpoint.
type APIHandler struct {
	dispatcher Dispatcher
	recorder   Recorder
	logger     *log.Logger
}

// NewAPIHandler creates an [APIHandler]. recorder may be nil.
func NewAPIHandler(dispatcher Dispatcher, recorder Recorder, logger *log.Logger) *APIHandler {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &APIHandler{dispatcher: dispatcher, recorder: recorder, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *APIHandler) Routes() []string {
	return []string{"POST /api/ytm"}
}

// ServeHTTP decodes an [actions.Request], dispatches it and writes the response envelope.
func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req actions.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, shared.NewValidationError(shared.ErrInvalidInput, "invalid JSON body: %v", err))
		return
	}

	resp, err := h.dispatcher.Dispatch(r.Context(), req)
	if req.Action == actions.ActionTracks {
		h.record(req, resp, err)
	}
	if err != nil {
		h.logger.Warn("action failed", "action", req.Action, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) record(req actions.Request, resp any, err error) {
	if h.recorder == nil || shared.IsValidationError(err) {
		return
	}

	if tracks, ok := resp.(*actions.TracksResponse); ok {
		_, _ = h.recorder.Record(tracks.PlaylistID, tracks.AuthUser, tracks.Result(), nil)
		return
	}

	id, _ := req.Params["id"].(string)
	if id == "" {
		id = services.LikedMusicID
	}
	authUser := req.AuthUser
	if authUser == "" {
		authUser = "0"
	}
	_, _ = h.recorder.Record(id, authUser, nil, err)
}

// RunsHandler serves recorded collection runs.
type RunsHandler struct {
	repo *repositories.RunRepository
}

// NewRunsHandler creates a [RunsHandler] backed by repo.
func NewRunsHandler(repo *repositories.RunRepository) *RunsHandler {
	return &RunsHandler{repo: repo}
}

// Routes returns the HTTP routes this handler serves.
func (h *RunsHandler) Routes() []string {
	return []string{"GET /api/runs", "GET /api/runs/{id}"}
}

type runDetail struct {
	*models.Run
	Tracks []models.Track `json:"tracks"`
}

// ServeHTTP lists runs, or shows one run with its tracks when an id is given.
//
// The list accepts "playlist" and "limit" query parameters.
func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if id := r.PathValue("id"); id != "" {
		run, err := h.repo.Get(id)
		if errors.Is(err, shared.ErrRunNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		tracks, err := h.repo.Tracks(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, runDetail{Run: run, Tracks: tracks})
		return
	}

	criteria := map[string]any{"playlist_id": r.URL.Query().Get("playlist")}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		criteria["limit"] = limit
	}

	runs, err := h.repo.List(criteria)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func errorBody(msg string) actions.ErrorResponse {
	return actions.ErrorResponse{Error: msg}
}

// writeError maps validation failures to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if shared.IsValidationError(err) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorBody(err.Error()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
