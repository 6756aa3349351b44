package extract

import "github.com/HuLaxx/Shiftify-sub000/internal/models"

// Dedupe keeps the first occurrence of each video id in order.
//
// Tracks without a video id are all kept.
func Dedupe(tracks []models.Track) []models.Track {
	seen := make(map[string]struct{}, len(tracks))
	out := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		if key, ok := t.Key(); ok {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, t)
	}
	return out
}
