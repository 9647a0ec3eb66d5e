package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/waxmatchapp/waxmatch-server/internal/discogs"
	"github.com/waxmatchapp/waxmatch-server/internal/domain"
)

const maxCandidatesPerGenre = 8

// Searcher issues catalog database searches.
type Searcher interface {
	Search(ctx context.Context, query, kind string) ([]discogs.SearchResult, error)
}

// Recommender turns a genre selection into catalog suggestions.
type Recommender struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewRecommender creates a recommendation engine backed by the given searcher.
func NewRecommender(searcher Searcher, logger *slog.Logger) *Recommender {
	return &Recommender{
		searcher: searcher,
		logger:   logger,
	}
}

// Recommend searches the catalog for each selected genre concurrently and
// packages unowned results into per-genre buckets.
//
// Bucket order follows the input selection order regardless of which search
// finishes first; gap genres precede reinforcement genres there, and the
// caller relies on that. One genre's search failure drops only that genre's
// bucket. Buckets left empty after owned-item filtering are omitted.
func (r *Recommender) Recommend(ctx context.Context, selection []string, gaps []string, ownedMasterIDs map[int64]bool) []domain.RecommendationBucket {
	gapSet := make(map[string]bool, len(gaps))
	for _, genre := range gaps {
		gapSet[genre] = true
	}

	// One result slot per genre keeps the join order-stable.
	results := make([][]discogs.SearchResult, len(selection))

	var wg sync.WaitGroup
	for i, genre := range selection {
		wg.Add(1)
		go func(i int, genre string) {
			defer wg.Done()

			found, err := r.searcher.Search(ctx, genre, discogs.SearchTypeMaster)
			if err != nil {
				r.logger.Warn("genre search failed, skipping bucket",
					"genre", genre,
					"error", err,
				)
				return
			}
			results[i] = found
		}(i, genre)
	}
	wg.Wait()

	buckets := make([]domain.RecommendationBucket, 0, len(selection))
	for i, genre := range selection {
		candidates := make([]domain.Release, 0, maxCandidatesPerGenre)
		for _, result := range results[i] {
			release := result.Release()
			if ownedMasterIDs[release.DedupKey()] {
				continue
			}
			candidates = append(candidates, release)
			if len(candidates) >= maxCandidatesPerGenre {
				break
			}
		}

		if len(candidates) == 0 {
			continue
		}

		buckets = append(buckets, domain.RecommendationBucket{
			Genre:      genre,
			Reason:     bucketReason(genre, gapSet[genre]),
			Candidates: candidates,
		})
	}

	return buckets
}

// RecommendationReport is the response of a full tally analysis.
type RecommendationReport struct {
	Recommendations []domain.RecommendationBucket `json:"recommendations"`
	AnalyzedGenres  []string                      `json:"analyzed_genres"`
	Gaps            []string                      `json:"gaps"`
}

// AnalyzeRecommendations runs gap analysis over a genre tally and searches
// the catalog for the selected genres, filtering out owned masters.
func (r *Recommender) AnalyzeRecommendations(ctx context.Context, tally []domain.GenreCount, ownedMasterIDs []int64) *RecommendationReport {
	analysis := AnalyzeGenres(tally)

	owned := make(map[int64]bool, len(ownedMasterIDs))
	for _, id := range ownedMasterIDs {
		owned[id] = true
	}

	buckets := r.Recommend(ctx, analysis.Selection, analysis.Gaps, owned)

	return &RecommendationReport{
		Recommendations: buckets,
		AnalyzedGenres:  analysis.Selection,
		Gaps:            analysis.Gaps,
	}
}

func bucketReason(genre string, isGap bool) string {
	if isGap {
		return fmt.Sprintf("Expand your horizons: %s is underrepresented in your collection", genre)
	}
	return fmt.Sprintf("More of what you love: you collect a lot of %s", genre)
}
