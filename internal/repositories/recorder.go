package repositories

import (
	"github.com/charmbracelet/log"

	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

// RunRecorder saves finished collections into a [RunRepository].
type RunRecorder struct {
	repo   *RunRepository
	logger *log.Logger
}

// NewRunRecorder creates a [RunRecorder]. A nil logger discards output.
func NewRunRecorder(repo *RunRepository, logger *log.Logger) *RunRecorder {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &RunRecorder{repo: repo, logger: logger}
}

// Record stores the outcome of collecting playlistID.
//
// A failed collection is stored with its error message and no tracks.
func (r *RunRecorder) Record(playlistID, authUser string, result *models.CollectResult, collectErr error) (*models.Run, error) {
	run := models.NewRun(playlistID, authUser, result)
	if run.BrowseID == "" {
		run.BrowseID = playlistID
	}

	var tracks []models.Track
	if result != nil {
		tracks = result.Tracks
	}
	if collectErr != nil {
		run.Error = collectErr.Error()
		tracks = nil
	}

	if err := r.repo.Create(run, tracks); err != nil {
		r.logger.Error("failed to record run", "playlist_id", playlistID, "error", err)
		return nil, err
	}

	r.logger.Info("run recorded", "run_id", run.RunID, "sequence", run.Sequence, "playlist_id", playlistID, "tracks", run.TrackCount)
	return run, nil
}
