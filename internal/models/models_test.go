package models

import "testing"

func TestDiagnostics(t *testing.T) {
	t.Run("MergeRenderers sums per type", func(t *testing.T) {
		d := NewDiagnostics()
		d.MergeRenderers(map[string]RendererStats{
			"musicResponsiveListItemRenderer": {Discovered: 3, Parsed: 2, MissingTitle: 1},
		})
		d.MergeRenderers(map[string]RendererStats{
			"musicResponsiveListItemRenderer": {Discovered: 2, Parsed: 2, MissingVideoID: 1},
			"playlistPanelVideoRenderer":      {Discovered: 1, Parsed: 1},
		})

		got := d.Renderers["musicResponsiveListItemRenderer"]
		want := RendererStats{Discovered: 5, Parsed: 4, MissingTitle: 1, MissingVideoID: 1}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}

		if total := d.Totals(); total.Parsed != 5 || total.Discovered != 6 {
			t.Errorf("unexpected totals %+v", total)
		}
	})

	t.Run("MergeRenderers initializes nil map", func(t *testing.T) {
		var d Diagnostics
		d.MergeRenderers(map[string]RendererStats{"x": {Parsed: 1}})
		if d.Renderers["x"].Parsed != 1 {
			t.Error("expected counters to be recorded")
		}
	})
}

func TestNewRun(t *testing.T) {
	total := 12
	result := &CollectResult{
		Tracks:    []Track{{Title: "A", Artist: "B", VideoID: "v1"}, {Title: "C", Artist: UnknownArtist}},
		Pages:     3,
		Truncated: true,
		Diagnostics: Diagnostics{
			Renderers:     map[string]RendererStats{"r": {Discovered: 3, Parsed: 2, MissingTitle: 1, MissingVideoID: 1}},
			ReportedTotal: &total,
			StopReason:    "max-tracks",
			BrowseID:      "VLPL1",
		},
	}

	run := NewRun("PL1", "1", result)
	if run.TrackCount != 2 || run.Pages != 3 || !run.Truncated {
		t.Errorf("unexpected counters %+v", run)
	}
	if run.MissingTitle != 1 || run.MissingVideoID != 1 {
		t.Errorf("unexpected missing counters %+v", run)
	}
	if run.BrowseID != "VLPL1" || run.StopReason != "max-tracks" || *run.ReportedTotal != 12 {
		t.Errorf("unexpected diagnostics copy %+v", run)
	}
	if err := run.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}

	if err := NewRun("", "0", nil).Validate(); err == nil {
		t.Error("expected error for missing playlist id")
	}
}

func TestTrackKey(t *testing.T) {
	if _, ok := (Track{Title: "x"}).Key(); ok {
		t.Error("id-less track must have no key")
	}
	if k, ok := (Track{Title: "x", VideoID: "v"}).Key(); !ok || k != "v" {
		t.Error("expected video id key")
	}
}
