package extract

import (
	"strings"

	"github.com/HuLaxx/Shiftify-sub000/internal/models"
)

// Renderer type names.
const (
	ResponsiveListItem = "musicResponsiveListItemRenderer"
	PlaylistPanelVideo = "playlistPanelVideoRenderer"
	TwoRowItem         = "musicTwoRowItemRenderer"
	PlaylistVideo      = "playlistVideoRenderer"
)

// RendererTypes lists the recognized renderer keys, primary first.
var RendererTypes = []string{ResponsiveListItem, PlaylistPanelVideo, TwoRowItem, PlaylistVideo}

// labelSeparators are tried in order; the first one present splits the label.
var labelSeparators = []string{" • ", " · ", " - "}

// itemTypeLabels prefix subtitles of search results and grid items.
var itemTypeLabels = map[string]bool{
	"Song": true, "Video": true, "Episode": true, "Single": true,
	"Album": true, "EP": true, "Playlist": true, "Podcast": true,
}

// Candidate is an object recognized as a renderer during one parse pass.
type Candidate struct {
	Type string
	Node map[string]any
}

// Page is the result of parsing one response.
type Page struct {
	Tracks    []models.Track
	Renderers map[string]models.RendererStats
}

// Candidates returns renderer candidates under root in document order.
//
// A captured renderer is not searched for nested renderers.
func Candidates(root any) []Candidate {
	var out []Candidate
	w := newWalker()
	w.walk(root, func(m map[string]any) bool {
		found := false
		for _, name := range RendererTypes {
			if inner, ok := m[name].(map[string]any); ok && w.mark(inner) {
				out = append(out, Candidate{Type: name, Node: inner})
				found = true
			}
		}
		if found {
			return true
		}
		if isUntypedListItem(m) {
			out = append(out, Candidate{Type: ResponsiveListItem, Node: m})
			return false
		}
		return true
	})
	return out
}

func isUntypedListItem(m map[string]any) bool {
	if _, ok := m["flexColumns"]; !ok {
		return false
	}
	_, hasItemData := m["playlistItemData"]
	_, hasEndpoint := m["navigationEndpoint"]
	return hasItemData || hasEndpoint
}

// ParseTracks extracts tracks from every renderer candidate under root.
//
// Candidates without a title are dropped and counted; tracks without an artist get [models.UnknownArtist].
func ParseTracks(root any) Page {
	page := Page{Renderers: map[string]models.RendererStats{}}
	for _, c := range Candidates(root) {
		stats := page.Renderers[c.Type]
		stats.Discovered++

		track, ok := ParseCandidate(c)
		if !ok {
			stats.MissingTitle++
			page.Renderers[c.Type] = stats
			continue
		}
		stats.Parsed++
		if track.VideoID == "" {
			stats.MissingVideoID++
		}
		page.Renderers[c.Type] = stats
		page.Tracks = append(page.Tracks, track)
	}
	return page
}

// ParseCandidate derives a track from one candidate; ok is false when no title is found.
func ParseCandidate(c Candidate) (models.Track, bool) {
	var title, artist, videoID string
	switch c.Type {
	case ResponsiveListItem:
		title, artist, videoID = responsiveListItem(c.Node)
	case PlaylistPanelVideo:
		title, artist, videoID = playlistPanelVideo(c.Node)
	case TwoRowItem:
		title, artist, videoID = twoRowItem(c.Node)
	case PlaylistVideo:
		title, artist, videoID = playlistVideo(c.Node)
	}

	if title == "" || artist == "" {
		if label := accessibilityLabel(c.Node); label != "" {
			parts := SplitLabel(label)
			if title == "" {
				title = parts[0]
			}
			if artist == "" && len(parts) > 1 {
				artist = parts[1]
			}
		}
	}

	if title == "" {
		return models.Track{}, false
	}
	if artist == "" {
		artist = models.UnknownArtist
	}
	return models.Track{Title: title, Artist: artist, VideoID: videoID}, true
}

// SplitLabel splits an accessibility label on the first separator it contains.
func SplitLabel(label string) []string {
	for _, sep := range labelSeparators {
		if strings.Contains(label, sep) {
			parts := strings.Split(label, sep)
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
	}
	return []string{strings.TrimSpace(label)}
}

func flexColumnText(m map[string]any, i int) any {
	return dig(m, "flexColumns", i, "musicResponsiveListItemFlexColumnRenderer", "text")
}

func responsiveListItem(m map[string]any) (title, artist, videoID string) {
	title = firstRun(flexColumnText(m, 0))
	artist = bylineArtist(text(flexColumnText(m, 1)))

	for _, path := range [][]any{
		{"playlistItemData", "videoId"},
		{"overlay", "musicItemThumbnailOverlayRenderer", "content", "musicPlayButtonRenderer", "playNavigationEndpoint", "watchEndpoint", "videoId"},
		{"flexColumns", 0, "musicResponsiveListItemFlexColumnRenderer", "text", "runs", 0, "navigationEndpoint", "watchEndpoint", "videoId"},
		{"navigationEndpoint", "watchEndpoint", "videoId"},
	} {
		if videoID = digString(m, path...); videoID != "" {
			break
		}
	}
	return title, artist, videoID
}

func playlistPanelVideo(m map[string]any) (title, artist, videoID string) {
	title = firstRun(m["title"])
	artist = bylineArtist(text(m["longBylineText"]))
	if artist == "" {
		artist = bylineArtist(text(m["shortBylineText"]))
	}
	videoID = digString(m, "videoId")
	if videoID == "" {
		videoID = digString(m, "navigationEndpoint", "watchEndpoint", "videoId")
	}
	return title, artist, videoID
}

func twoRowItem(m map[string]any) (title, artist, videoID string) {
	title = firstRun(m["title"])
	artist = bylineArtist(text(m["subtitle"]))
	videoID = digString(m, "navigationEndpoint", "watchEndpoint", "videoId")
	return title, artist, videoID
}

func playlistVideo(m map[string]any) (title, artist, videoID string) {
	title = firstRun(m["title"])
	artist = firstRun(m["shortBylineText"])
	videoID = digString(m, "videoId")
	return title, artist, videoID
}

// bylineArtist takes the artist segment of a "Song • Artist • Album" style byline.
func bylineArtist(byline string) string {
	if byline == "" {
		return ""
	}
	parts := strings.Split(byline, " • ")
	if len(parts) > 1 && itemTypeLabels[strings.TrimSpace(parts[0])] {
		parts = parts[1:]
	}
	return strings.TrimSpace(parts[0])
}

var labelPaths = [][]any{
	{"accessibility", "accessibilityData", "label"},
	{"title", "accessibility", "accessibilityData", "label"},
	{"flexColumns", 0, "musicResponsiveListItemFlexColumnRenderer", "text", "accessibility", "accessibilityData", "label"},
}

// playLabelPaths read labels of the form "Play <title> - <artist>".
var playLabelPaths = [][]any{
	{"overlay", "musicItemThumbnailOverlayRenderer", "content", "musicPlayButtonRenderer", "accessibilityPlayData", "accessibilityData", "label"},
	{"thumbnailOverlay", "musicItemThumbnailOverlayRenderer", "content", "musicPlayButtonRenderer", "accessibilityPlayData", "accessibilityData", "label"},
}

func accessibilityLabel(m map[string]any) string {
	for _, path := range labelPaths {
		if label := digString(m, path...); label != "" {
			return label
		}
	}
	for _, path := range playLabelPaths {
		if label := digString(m, path...); label != "" {
			return strings.TrimSpace(strings.TrimPrefix(label, "Play "))
		}
	}
	return ""
}
