package service

import (
	"github.com/waxmatchapp/waxmatch-server/internal/domain"
)

// majorGenres is the reference list of major genre categories, in priority
// order. Gap scanning walks this list top-down so the resulting gap set has
// a stable, explainable ranking rather than a magnitude sort.
var majorGenres = []string{
	"Electronic",
	"Rock",
	"Jazz",
	"Hip Hop",
	"Classical",
	"Folk, World, & Country",
	"Funk / Soul",
	"Pop",
	"Reggae",
	"Blues",
	"Latin",
	"Stage & Screen",
}

const (
	// gapThresholdPercent is the share below which a major genre counts as
	// underrepresented.
	gapThresholdPercent = 10.0

	maxGaps      = 3
	maxTopGenres = 2
	maxSelection = 4
)

// AnalyzeGenres derives gap and reinforcement genres from a genre tally.
//
// The tally's order is significant: top genres are taken in tally order,
// not re-sorted by count. An empty collection yields no gaps; everything
// would be a "gap" of a collection that does not exist.
func AnalyzeGenres(tally []domain.GenreCount) domain.GenreAnalysis {
	total := 0
	counts := make(map[string]int, len(tally))
	for _, entry := range tally {
		total += entry.Count
		counts[entry.Name] = entry.Count
	}

	analysis := domain.GenreAnalysis{
		Gaps:      []string{},
		Top:       []string{},
		Selection: []string{},
	}

	if total > 0 {
		for _, genre := range majorGenres {
			if len(analysis.Gaps) >= maxGaps {
				break
			}
			count := counts[genre]
			share := 100 * float64(count) / float64(total)
			if share < gapThresholdPercent {
				analysis.Gaps = append(analysis.Gaps, genre)
			}
		}
	}

	major := make(map[string]bool, len(majorGenres))
	for _, genre := range majorGenres {
		major[genre] = true
	}
	for _, entry := range tally {
		if len(analysis.Top) >= maxTopGenres {
			break
		}
		if major[entry.Name] {
			analysis.Top = append(analysis.Top, entry.Name)
		}
	}

	seen := make(map[string]bool, maxSelection)
	for _, genre := range append(append([]string{}, analysis.Gaps...), analysis.Top...) {
		if len(analysis.Selection) >= maxSelection {
			break
		}
		if seen[genre] {
			continue
		}
		seen[genre] = true
		analysis.Selection = append(analysis.Selection, genre)
	}

	return analysis
}
