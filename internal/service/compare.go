package service

import (
	"math"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
)

// Compare partitions two collections by shared master identity and scores
// their similarity.
//
// The join key is the master ID: multiple pressings of the same work count
// once. Items without a master ID are unjoinable and excluded from every
// partition rather than dumped into the "only" sets. The compatibility
// score is Jaccard similarity over distinct masters, scaled to [0,100].
func Compare(mine, theirs []domain.Release) domain.ComparisonResult {
	mineIDs := masterSet(mine)
	theirIDs := masterSet(theirs)

	overlapIDs := make(map[int64]bool)
	for id := range mineIDs {
		if theirIDs[id] {
			overlapIDs[id] = true
		}
	}
	unionSize := len(mineIDs) + len(theirIDs) - len(overlapIDs)

	result := domain.ComparisonResult{
		Overlap:        []domain.Release{},
		OnlyMine:       []domain.Release{},
		OnlyTheirs:     []domain.Release{},
		MineDistinct:   len(mineIDs),
		TheirsDistinct: len(theirIDs),
	}

	for _, item := range mine {
		id, ok := item.JoinKey()
		if !ok {
			continue
		}
		if overlapIDs[id] {
			result.Overlap = append(result.Overlap, item)
		} else {
			result.OnlyMine = append(result.OnlyMine, item)
		}
	}
	for _, item := range theirs {
		id, ok := item.JoinKey()
		if !ok {
			continue
		}
		if !overlapIDs[id] {
			result.OnlyTheirs = append(result.OnlyTheirs, item)
		}
	}

	if unionSize > 0 {
		result.CompatibilityScore = int(math.Round(100 * float64(len(overlapIDs)) / float64(unionSize)))
	}

	return result
}

func masterSet(items []domain.Release) map[int64]bool {
	set := make(map[int64]bool, len(items))
	for _, item := range items {
		if id, ok := item.JoinKey(); ok {
			set[id] = true
		}
	}
	return set
}
