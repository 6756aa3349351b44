// package models defines the data model for the YouTube Music extraction client
package models

import (
	"fmt"
	"time"
)

// UnknownArtist is the artist recorded when no renderer field names one.
const UnknownArtist = "Unknown Artist"

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Track is one playable item extracted from a response.
//
// VideoID is empty when the renderer exposed none; such tracks are never merged by [Track.Key].
type Track struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	VideoID string `json:"videoId,omitempty"`
}

// Key returns the identity used for de-duplication and whether the track has one.
func (t Track) Key() (string, bool) {
	return t.VideoID, t.VideoID != ""
}

// Playlist is a library playlist entry.
type Playlist struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// RendererStats counts renderer candidates of one type.
type RendererStats struct {
	Discovered     int `json:"discovered"`
	Parsed         int `json:"parsed"`
	MissingTitle   int `json:"missingTitle"`
	MissingVideoID int `json:"missingVideoId"`
}

// Add returns the field-wise sum of s and o.
func (s RendererStats) Add(o RendererStats) RendererStats {
	return RendererStats{
		Discovered:     s.Discovered + o.Discovered,
		Parsed:         s.Parsed + o.Parsed,
		MissingTitle:   s.MissingTitle + o.MissingTitle,
		MissingVideoID: s.MissingVideoID + o.MissingVideoID,
	}
}

// Diagnostics describes how a collection run went.
type Diagnostics struct {
	Renderers         map[string]RendererStats `json:"renderers"`
	ReportedTotal     *int                     `json:"reportedTotal"`
	MetadataCounts    map[string]int           `json:"metadataCounts"`
	StopReason        string                   `json:"stopReason,omitempty"`
	BrowseID          string                   `json:"browseId,omitempty"`
	AlternateBrowseID string                   `json:"alternateBrowseId,omitempty"`
	AlternateError    string                   `json:"alternateError,omitempty"`
	EmptyPages        int                      `json:"emptyPages"`
}

// NewDiagnostics returns Diagnostics with initialized maps.
func NewDiagnostics() Diagnostics {
	return Diagnostics{
		Renderers:      map[string]RendererStats{},
		MetadataCounts: map[string]int{},
	}
}

// MergeRenderers sums the per-type counters of page into d.
func (d *Diagnostics) MergeRenderers(page map[string]RendererStats) {
	if d.Renderers == nil {
		d.Renderers = map[string]RendererStats{}
	}
	for name, stats := range page {
		d.Renderers[name] = d.Renderers[name].Add(stats)
	}
}

// Totals sums the counters of every renderer type.
func (d Diagnostics) Totals() RendererStats {
	var total RendererStats
	for _, stats := range d.Renderers {
		total = total.Add(stats)
	}
	return total
}

// CollectResult is the outcome of paginating one browse id.
type CollectResult struct {
	Tracks      []Track     `json:"tracks"`
	Pages       int         `json:"pages"`
	Truncated   bool        `json:"truncated"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// PlaylistExport is a playlist together with its collected tracks.
type PlaylistExport struct {
	Playlist    Playlist    `json:"playlist"`
	Tracks      []Track     `json:"tracks"`
	Truncated   bool        `json:"truncated"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// NewPlaylistExport pairs a playlist with a collection result.
func NewPlaylistExport(playlist Playlist, result *CollectResult) *PlaylistExport {
	export := &PlaylistExport{Playlist: playlist}
	if result != nil {
		export.Tracks = result.Tracks
		export.Truncated = result.Truncated
		export.Diagnostics = result.Diagnostics
	}
	return export
}

// MissingTitle is the number of renderers dropped for lacking a title.
func (r CollectResult) MissingTitle() int { return r.Diagnostics.Totals().MissingTitle }

// MissingVideoID is the number of parsed tracks without a video id.
func (r CollectResult) MissingVideoID() int { return r.Diagnostics.Totals().MissingVideoID }

// Run is a persisted record of one track collection.
type Run struct {
	RunID          string      `json:"runId"`
	Sequence       int         `json:"sequence"`
	PlaylistID     string      `json:"playlistId"`
	BrowseID       string      `json:"browseId"`
	AuthUser       string      `json:"authUser"`
	TrackCount     int         `json:"trackCount"`
	Pages          int         `json:"pages"`
	Truncated      bool        `json:"truncated"`
	StopReason     string      `json:"stopReason"`
	MissingTitle   int         `json:"missingTitle"`
	MissingVideoID int         `json:"missingVideoId"`
	ReportedTotal  *int        `json:"reportedTotal"`
	Diagnostics    Diagnostics `json:"diagnostics"`
	Error          string      `json:"error,omitempty"`
	Created        time.Time   `json:"createdAt"`
	Updated        time.Time   `json:"updatedAt"`
}

// NewRun builds a Run from a collection result.
func NewRun(playlistID, authUser string, result *CollectResult) *Run {
	run := &Run{PlaylistID: playlistID, AuthUser: authUser}
	if result == nil {
		return run
	}
	run.BrowseID = result.Diagnostics.BrowseID
	run.TrackCount = len(result.Tracks)
	run.Pages = result.Pages
	run.Truncated = result.Truncated
	run.StopReason = result.Diagnostics.StopReason
	run.MissingTitle = result.MissingTitle()
	run.MissingVideoID = result.MissingVideoID()
	run.ReportedTotal = result.Diagnostics.ReportedTotal
	run.Diagnostics = result.Diagnostics
	return run
}

func (r *Run) ID() string           { return r.RunID }
func (r *Run) CreatedAt() time.Time { return r.Created }
func (r *Run) UpdatedAt() time.Time { return r.Updated }

// Validate checks required fields.
func (r *Run) Validate() error {
	if r.PlaylistID == "" {
		return fmt.Errorf("run playlist id is required")
	}
	if r.TrackCount < 0 || r.Pages < 0 {
		return fmt.Errorf("run counters must not be negative")
	}
	return nil
}
