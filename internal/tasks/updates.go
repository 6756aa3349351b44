package tasks

import (
	"fmt"

	"github.com/HuLaxx/Shiftify-sub000/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSeed Phase = iota
	FetchPage
	RetryAlternate
	Done
	ExportPlaylist
)

func (p Phase) String() string {
	switch p {
	case FetchSeed:
		return "fetch_seed"
	case FetchPage:
		return "fetch_page"
	case RetryAlternate:
		return "retry_alternate"
	case Done:
		return "done"
	case ExportPlaylist:
		return "export_playlist"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchSeedUpdate(browseID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSeed,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching %s...", browseID),
	}
}

func fetchPageUpdate(page, maxPages, tracks int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Step:    page,
		Total:   maxPages,
		Message: fmt.Sprintf("Fetched page %d (%d tracks)", page, tracks),
		Data:    tracks,
	}
}

func retryAlternateUpdate(browseID, alternate string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RetryAlternate,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("No tracks under %s, retrying as %s...", browseID, alternate),
	}
}

func doneUpdate(result *models.CollectResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    result.Pages,
		Total:   result.Pages,
		Message: fmt.Sprintf("Collected %d tracks in %d pages (%s)", len(result.Tracks), result.Pages, result.Diagnostics.StopReason),
		Data:    result,
	}
}

func exportingPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
