// package tasks implements paginated track collection and bulk exports.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/HuLaxx/Shiftify-sub000/internal/extract"
	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/services"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

const (
	DefaultMaxTracks = 20000
	DefaultMaxPages  = 200

	// emptyPageLimit is the number of consecutive fetched pages without tracks that ends a run.
	emptyPageLimit = 2
)

// ClampMaxTracks maps a non-positive limit to [DefaultMaxTracks] and caps larger ones at it.
func ClampMaxTracks(n int) int {
	if n <= 0 || n > DefaultMaxTracks {
		return DefaultMaxTracks
	}
	return n
}

// Stop reasons, highest priority first.
const (
	StopEmptyPages     = "empty-pages"
	StopMaxTracks      = "max-tracks"
	StopMaxPages       = "max-pages"
	StopNoContinuation = "no-continuation"
)

// PageFetcher fetches the pages a [Collector] walks. [services.Session] implements it.
type PageFetcher interface {
	Browse(ctx context.Context, browseID string) (any, error)
	Continue(ctx context.Context, token, browseID string) (any, error)
}

// Collector follows continuation tokens until a stop condition fires.
type Collector struct {
	fetcher  PageFetcher
	maxPages int
	limiter  *rate.Limiter
	logger   *log.Logger
}

// NewCollector creates a [Collector] bounded by cfg.
//
// A zero MaxPages uses [DefaultMaxPages]; a zero PagesPerSecond does not throttle.
func NewCollector(fetcher PageFetcher, cfg shared.CollectorConfig, logger *log.Logger) *Collector {
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	limit := rate.Inf
	if cfg.PagesPerSecond > 0 {
		limit = rate.Limit(cfg.PagesPerSecond)
	}
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Collector{
		fetcher:  fetcher,
		maxPages: maxPages,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger,
	}
}

// Collect fetches the first page of browseID and paginates from there.
func (c *Collector) Collect(ctx context.Context, progress chan<- ProgressUpdate, browseID string, maxTracks int) (*models.CollectResult, error) {
	sendProgress(progress, fetchSeedUpdate(browseID))
	seed, err := c.fetcher.Browse(ctx, browseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", browseID, err)
	}
	return c.Run(ctx, progress, seed, browseID, maxTracks)
}

// Run paginates from an already fetched seed page.
//
// When nothing is found and browseID is not the liked videos feed, one more run is made against the id with the "VL"
// prefix toggled; its result replaces the first one only if it found tracks.
func (c *Collector) Run(ctx context.Context, progress chan<- ProgressUpdate, seed any, browseID string, maxTracks int) (*models.CollectResult, error) {
	maxTracks = ClampMaxTracks(maxTracks)

	result, err := c.paginate(ctx, progress, seed, browseID, maxTracks)
	if err != nil {
		return nil, err
	}

	if len(result.Tracks) == 0 && browseID != services.LikedVideosBrowseID {
		alternate := services.ToggleBrowsePrefix(browseID)
		result.Diagnostics.AlternateBrowseID = alternate
		sendProgress(progress, retryAlternateUpdate(browseID, alternate))
		c.logger.Info("no tracks found, retrying alternate browse id", "browse_id", browseID, "alternate", alternate)

		retried, err := c.retryAlternate(ctx, progress, alternate, maxTracks)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, err
		case err != nil:
			c.logger.Warn("alternate browse id failed", "alternate", alternate, "error", err)
			result.Diagnostics.AlternateError = err.Error()
		case len(retried.Tracks) > 0:
			retried.Diagnostics.AlternateBrowseID = alternate
			result = retried
		}
	}

	c.logger.Info("collection finished",
		"browse_id", result.Diagnostics.BrowseID,
		"tracks", len(result.Tracks),
		"pages", result.Pages,
		"stop_reason", result.Diagnostics.StopReason,
		"truncated", result.Truncated,
	)
	sendProgress(progress, doneUpdate(result))
	return result, nil
}

func (c *Collector) retryAlternate(ctx context.Context, progress chan<- ProgressUpdate, alternate string, maxTracks int) (*models.CollectResult, error) {
	seed, err := c.fetcher.Browse(ctx, alternate)
	if err != nil {
		return nil, err
	}
	return c.paginate(ctx, progress, seed, alternate, maxTracks)
}

func (c *Collector) paginate(ctx context.Context, progress chan<- ProgressUpdate, seed any, browseID string, maxTracks int) (*models.CollectResult, error) {
	diag := models.NewDiagnostics()
	diag.BrowseID = browseID

	page := extract.ParseTracks(seed)
	diag.MergeRenderers(page.Renderers)
	diag.ReportedTotal = extract.ReportedTotal(seed)
	mergeCounts(diag.MetadataCounts, extract.MetadataCounts(seed))

	tracks := extract.Dedupe(page.Tracks)
	token := extract.ContinuationToken(seed)
	c.logger.Debug("seed parsed", "browse_id", browseID, "tracks", len(tracks), "continuation", token != "")

	// requests counts every continuation call, resends included, against maxPages.
	var requests, fetched, emptyStreak int
	emptyStop := false
	for token != "" && len(tracks) < maxTracks && requests < c.maxPages {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		requests++
		data, err := c.fetcher.Continue(ctx, token, "")
		if err != nil && shared.IsInvalidArgument(err) {
			if requests >= c.maxPages {
				c.logger.Debug("continuation rejected with no page budget left", "browse_id", browseID, "page", fetched+2)
				break
			}
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
			c.logger.Debug("continuation rejected, resending with browse id", "browse_id", browseID, "page", fetched+2)
			requests++
			data, err = c.fetcher.Continue(ctx, token, browseID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d of %s: %w", fetched+2, browseID, err)
		}
		fetched++

		page := extract.ParseTracks(data)
		diag.MergeRenderers(page.Renderers)
		mergeCounts(diag.MetadataCounts, extract.MetadataCounts(data))
		if diag.ReportedTotal == nil {
			diag.ReportedTotal = extract.ReportedTotal(data)
		}

		tracks = extract.Dedupe(append(tracks, page.Tracks...))
		token = extract.ContinuationToken(data)

		if len(page.Tracks) == 0 {
			emptyStreak++
			diag.EmptyPages++
		} else {
			emptyStreak = 0
		}

		c.logger.Debug("page fetched", "browse_id", browseID, "page", fetched+1, "parsed", len(page.Tracks), "tracks", len(tracks))
		sendProgress(progress, fetchPageUpdate(fetched+1, c.maxPages+1, len(tracks)))

		if emptyStreak >= emptyPageLimit {
			emptyStop = true
			break
		}
	}

	switch {
	case emptyStop:
		diag.StopReason = StopEmptyPages
	case len(tracks) >= maxTracks:
		diag.StopReason = StopMaxTracks
	case requests >= c.maxPages:
		diag.StopReason = StopMaxPages
	default:
		diag.StopReason = StopNoContinuation
	}

	truncated := token != "" && len(tracks) >= maxTracks
	if len(tracks) > maxTracks {
		tracks = tracks[:maxTracks]
	}

	return &models.CollectResult{
		Tracks:      tracks,
		Pages:       fetched + 1,
		Truncated:   truncated,
		Diagnostics: diag,
	}, nil
}

// mergeCounts keeps the larger value per field.
func mergeCounts(dst, src map[string]int) {
	for k, v := range src {
		if prev, ok := dst[k]; !ok || v > prev {
			dst[k] = v
		}
	}
}
