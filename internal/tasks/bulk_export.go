package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/HuLaxx/Shiftify-sub000/internal/formatter"
	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     string // Export format: json, csv, markdown, txt
	OutputDir  string // Base output directory (default: ytmusic_export_{epoch})
	NumWorkers int    // Concurrent file writers (default: 3)
	MaxTracks  int    // Per-playlist track ceiling (default: [DefaultMaxTracks])
}

// PlaylistExportJob is one collected playlist waiting to be written.
type PlaylistExportJob struct {
	Export *models.PlaylistExport
}

// PlaylistExportResult reports the outcome of exporting one playlist.
type PlaylistExportResult struct {
	PlaylistID   string   `json:"playlist_id"`
	PlaylistName string   `json:"playlist_name"`
	TrackCount   int      `json:"track_count"`
	Truncated    bool     `json:"truncated"`
	StopReason   string   `json:"stop_reason,omitempty"`
	Success      bool     `json:"success"`
	Files        []string `json:"files,omitempty"`
	Error        error    `json:"-"`
	ErrorMessage string   `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalPlaylists    int                    `json:"total_playlists"`
	SuccessfulExports int                    `json:"successful_exports"`
	FailedExports     int                    `json:"failed_exports"`
	OutputDirectory   string                 `json:"output_directory"`
	ManifestPath      string                 `json:"-"`
	Results           []PlaylistExportResult `json:"results"`
}

// BulkExport collects every playlist in turn and writes the exports with a pool of workers.
//
// Collection stays sequential; only file writing runs concurrently. A playlist that fails is recorded and the
// export continues. A manifest summarizing the results is written to the output directory.
func (c *Collector) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, playlists []models.Playlist, opts BulkExportOpts) (*BulkExportResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("ytmusic_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	opts.MaxTracks = ClampMaxTracks(opts.MaxTracks)
	if !formatter.IsSupported(opts.Format) {
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, opts.Format)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalPlaylists:  len(playlists),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(playlists)),
	}

	jobs := make(chan PlaylistExportJob, len(playlists))
	results := make(chan PlaylistExportResult, len(playlists))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go exportWorker(&wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, pl := range playlists {
			select {
			case <-ctx.Done():
				return
			default:
			}

			sendProgress(prog, exportingPlaylistUpdate(i+1, len(playlists), pl.Title))
			collected, err := c.Collect(ctx, nil, pl.ID, opts.MaxTracks)
			if err != nil {
				results <- PlaylistExportResult{
					PlaylistID:   pl.ID,
					PlaylistName: pl.Title,
					Error:        fmt.Errorf("failed to collect playlist: %w", err),
				}
				continue
			}
			jobs <- PlaylistExportJob{Export: models.NewPlaylistExport(pl, collected)}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			res.ErrorMessage = res.Error.Error()
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(playlists), res.PlaylistName, res.Error))
		} else {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(playlists), res.PlaylistName, len(res.Files)))
		}
		result.Results = append(result.Results, res)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	data, err := shared.MarshalJSON(result, true)
	if err == nil {
		err = os.WriteFile(manifestPath, data, 0644)
	}
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker writes exports from the jobs channel until it is closed.
func exportWorker(wg *sync.WaitGroup, jobs <-chan PlaylistExportJob, results chan<- PlaylistExportResult, opts BulkExportOpts) {
	defer wg.Done()
	for job := range jobs {
		results <- exportSinglePlaylist(job, opts)
	}
}

func exportSinglePlaylist(j PlaylistExportJob, opts BulkExportOpts) PlaylistExportResult {
	res := PlaylistExportResult{
		PlaylistID:   j.Export.Playlist.ID,
		PlaylistName: j.Export.Playlist.Title,
		TrackCount:   len(j.Export.Tracks),
		Truncated:    j.Export.Truncated,
		StopReason:   j.Export.Diagnostics.StopReason,
	}

	files, err := formatter.WriteExport(j.Export, opts.Format, opts.OutputDir)
	if err != nil {
		res.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return res
	}
	res.Files = files
	res.Success = true
	return res
}
