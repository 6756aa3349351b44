package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var headerRenderers = []string{
	"musicResponsiveHeaderRenderer",
	"musicDetailHeaderRenderer",
	"musicEditablePlaylistDetailHeaderRenderer",
	"musicImmersiveHeaderRenderer",
	"musicVisualHeaderRenderer",
}

// MetadataFields are the count fields collected by [MetadataCounts].
var MetadataFields = []string{"trackCount", "videoCount", "numItems", "totalCount"}

// reportedCountPattern matches a count with optional comma thousands separators, e.g. "1,234 songs".
var reportedCountPattern = regexp.MustCompile(`(?i)\b(\d{1,3}(?:,\d{3})+|\d+)\s*(songs|tracks|items|videos)\b`)

// ReportedTotal reads the item count a playlist header displays, e.g. "1,234 songs".
//
// It returns nil when no header carries one.
func ReportedTotal(root any) *int {
	var total *int
	Walk(root, func(m map[string]any) bool {
		if total != nil {
			return false
		}
		for _, name := range headerRenderers {
			header := digMap(m, name)
			if header == nil {
				continue
			}
			for _, s := range headerTexts(header) {
				if n, ok := parseReportedCount(s); ok {
					total = &n
					return false
				}
			}
		}
		return true
	})
	return total
}

// headerTexts returns each run of the header's text fields on its own, followed by the joined field text.
//
// Runs are tried first so a year run ("2024") never fuses with the count run that follows it.
func headerTexts(header map[string]any) []string {
	candidates := []any{
		header["subtitle"],
		header["secondSubtitle"],
		header["description"],
		dig(header, "description", "musicDescriptionShelfRenderer", "description"),
	}
	var out []string
	for _, c := range candidates {
		runs, _ := dig(c, "runs").([]any)
		for _, run := range runs {
			if s := digString(run, "text"); s != "" {
				out = append(out, s)
			}
		}
		if s := text(c); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseReportedCount(s string) (int, bool) {
	match := reportedCountPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	return n, err == nil
}

// MetadataCounts returns the largest value seen for each of [MetadataFields] anywhere in root.
//
// Fields never seen are absent from the map.
func MetadataCounts(root any) map[string]int {
	counts := map[string]int{}
	Walk(root, func(m map[string]any) bool {
		for _, field := range MetadataFields {
			v, ok := m[field]
			if !ok {
				continue
			}
			n, ok := number(v)
			if !ok {
				continue
			}
			if prev, seen := counts[field]; !seen || n > prev {
				counts[field] = n
			}
		}
		return true
	})
	return counts
}
