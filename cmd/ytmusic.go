package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/HuLaxx/Shiftify-sub000/internal/formatter"
	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/repositories"
	"github.com/HuLaxx/Shiftify-sub000/internal/services"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
	"github.com/HuLaxx/Shiftify-sub000/internal/tasks"
)

// Verify checks that the configured cookies can read the library.
func (r *Runner) Verify(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.library()
	if err != nil {
		return err
	}

	resp, err := lib.Verify(ctx)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp, cmd.Bool("pretty"))
	}
	return r.writePlain("✓ Cookies are valid (account %s)\n", resp.AuthUser)
}

// Playlists lists liked playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.library()
	if err != nil {
		return err
	}

	playlists, err := lib.Playlists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}
	r.logger.Info("playlists fetched", "count", len(playlists), "auth_user", lib.AuthUser())

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (account %s)", lib.AuthUser()))
	for i, pl := range playlists {
		r.writePlain("%3d. %-40s %s\n", i+1, pl.Title, pl.ID)
	}
	return r.writePlainln("Total: %d playlists", len(playlists))
}

// Tracks collects one playlist and renders it in the requested format.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if !formatter.IsSupported(format) {
		return fmt.Errorf("%w: unsupported format %q (use one of %s)", shared.ErrInvalidFlag, format, strings.Join(formatter.Formats, ", "))
	}

	lib, err := r.library()
	if err != nil {
		return err
	}

	id := cmd.String("id")
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		r.watch(progress)
		close(done)
	}()

	result, err := lib.Tracks(ctx, progress, id, int(cmd.Int("limit")))
	close(progress)
	<-done

	if cmd.Bool("record") {
		if recErr := r.record(id, lib.AuthUser(), result, err); recErr != nil {
			r.logger.Warn("run not recorded", "error", recErr)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to collect tracks: %w", err)
	}

	title := id
	if id == services.LikedMusicID {
		title = services.LikedMusicTitle
	}
	export := models.NewPlaylistExport(models.Playlist{ID: id, Title: title}, result)
	if path := cmd.String("output"); path != "" {
		return r.renderToFile(export, format, path)
	}
	return formatter.Render(r.output, export, format)
}

func (r *Runner) renderToFile(export *models.PlaylistExport, format, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := formatter.Render(f, export, format); err != nil {
		return err
	}
	r.logger.Info("tracks written", "path", path, "tracks", len(export.Tracks), "format", format)
	return nil
}

// record stores a collection outcome in the run history.
func (r *Runner) record(playlistID, authUser string, result *models.CollectResult, collectErr error) error {
	repo, closeDB, err := r.runRepository()
	if err != nil {
		return err
	}
	defer closeDB()

	run, err := repositories.NewRunRecorder(repo, r.logger).Record(playlistID, authUser, result, collectErr)
	if err != nil {
		return err
	}
	r.logger.Info("run recorded", "run_id", run.RunID)
	return nil
}

// Search prints the video ID of the first search result.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	lib, err := r.library()
	if err != nil {
		return err
	}

	r.logger.Info("searching youtube music", "query", query)
	videoID, err := lib.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		var found *string
		if videoID != "" {
			found = &videoID
		}
		return r.writeJSON(map[string]any{"videoId": found}, cmd.Bool("pretty"))
	}
	if videoID == "" {
		return r.writePlain("No match for %q\n", query)
	}
	return r.writePlain("%s\t%s\n", videoID, formatter.WatchURL(videoID))
}

// Like rates a video as liked.
func (r *Runner) Like(ctx context.Context, cmd *cli.Command) error {
	return r.rate(ctx, cmd, true)
}

// Unlike clears the rating of a video.
func (r *Runner) Unlike(ctx context.Context, cmd *cli.Command) error {
	return r.rate(ctx, cmd, false)
}

func (r *Runner) rate(ctx context.Context, cmd *cli.Command, like bool) error {
	videoID := strings.TrimSpace(cmd.StringArg("videoId"))
	if videoID == "" {
		return fmt.Errorf("%w: videoId", shared.ErrMissingArgument)
	}

	lib, err := r.library()
	if err != nil {
		return err
	}

	if like {
		err = lib.Like(ctx, videoID)
	} else {
		err = lib.RemoveLike(ctx, videoID)
	}
	if err != nil {
		return fmt.Errorf("failed to rate %s: %w", videoID, err)
	}

	if like {
		return r.writePlain("✓ Liked %s\n", videoID)
	}
	return r.writePlain("✓ Removed like from %s\n", videoID)
}

// Export collects every liked playlist and writes one export per playlist.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.library()
	if err != nil {
		return err
	}

	playlists, err := lib.Playlists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}
	if ids := cmd.StringSlice("id"); len(ids) > 0 {
		playlists = slices.DeleteFunc(playlists, func(p models.Playlist) bool {
			return !slices.Contains(ids, p.ID)
		})
	}
	if len(playlists) == 0 {
		return fmt.Errorf("%w: no playlists to export", shared.ErrPlaylistNotFound)
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output-dir"),
		NumWorkers: int(cmd.Int("workers")),
		MaxTracks:  lib.TrackLimit(int(cmd.Int("limit"))),
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		r.watch(progress)
		close(done)
	}()

	result, err := lib.Collector().BulkExport(ctx, progress, playlists, opts)
	close(progress)
	<-done
	if result == nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainHeader("Export complete")
	r.writePlain("Directory:  %s\n", result.OutputDirectory)
	r.writePlain("Playlists:  %d\n", result.TotalPlaylists)
	r.writePlain("Succeeded:  %d\n", result.SuccessfulExports)
	r.writePlain("Failed:     %d\n", result.FailedExports)
	for _, res := range result.Results {
		if res.ErrorMessage != "" {
			r.writePlain("  ✗ %s: %s\n", res.PlaylistName, res.ErrorMessage)
		}
	}
	if result.ManifestPath != "" {
		r.writePlain("Manifest:   %s\n", result.ManifestPath)
	}
	return err
}
