package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/HuLaxx/Shiftify-sub000/internal/formatter"
	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

// RunsList prints recorded runs, newest first.
func (r *Runner) RunsList(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.runRepository()
	if err != nil {
		return err
	}
	defer closeDB()

	runs, err := repo.List(map[string]any{
		"playlist_id": cmd.String("playlist"),
		"limit":       int(cmd.Int("limit")),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Recorded runs")
	for _, run := range runs {
		status := run.StopReason
		if run.Error != "" {
			status = "error"
		}
		r.writePlain("#%-4d %s  %-20s %6d tracks  %3d pages  %-16s %s\n",
			run.Sequence, run.Created.Local().Format("2006-01-02 15:04"), run.PlaylistID, run.TrackCount, run.Pages, status, run.RunID)
	}
	return r.writePlainln("Total: %d runs", len(runs))
}

// RunsShow renders one run's tracks.
func (r *Runner) RunsShow(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: run id", shared.ErrMissingArgument)
	}

	format := cmd.String("format")
	if !formatter.IsSupported(format) {
		return fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}

	repo, closeDB, err := r.runRepository()
	if err != nil {
		return err
	}
	defer closeDB()

	run, err := repo.Get(id)
	if err != nil {
		return err
	}
	tracks, err := repo.Tracks(id)
	if err != nil {
		return err
	}

	if run.Error != "" {
		r.logger.Warn("run failed", "run_id", run.RunID, "error", run.Error)
	}

	export := &models.PlaylistExport{
		Playlist:    models.Playlist{ID: run.PlaylistID, Title: run.PlaylistID},
		Tracks:      tracks,
		Truncated:   run.Truncated,
		Diagnostics: run.Diagnostics,
	}
	return formatter.Render(r.output, export, format)
}
