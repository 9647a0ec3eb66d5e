// Package search provides full-text crate search over a fetched
// collection using an in-memory Bleve index.
//
// Collections are fetched from the Discogs API per request, so the index
// is ephemeral: built once from a slice of releases, queried, then
// closed. Nothing touches disk.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
)

const defaultLimit = 25

// CrateIndex is an in-memory full-text index over one user's collection.
type CrateIndex struct {
	index bleve.Index
}

// Hit is a single crate search match.
type Hit struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Artist string   `json:"artist"`
	Genres []string `json:"genres,omitempty"`
	Score  float64  `json:"score"`
}

// Result holds crate search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"tookMs"`
	Hits   []Hit  `json:"hits"`
}

// NewCrateIndex builds an in-memory index over the given releases.
// The caller must Close the index when done.
func NewCrateIndex(releases []domain.Release) (*CrateIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create crate index: %w", err)
	}

	batch := index.NewBatch()
	for i := range releases {
		doc := FromRelease(releases[i])
		if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
			index.Close()
			return nil, fmt.Errorf("batch index %s: %w", doc.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return &CrateIndex{index: index}, nil
}

// Close releases the index.
func (c *CrateIndex) Close() error {
	return c.index.Close()
}

// Search runs a full-text query over the crate.
func (c *CrateIndex) Search(ctx context.Context, q string, limit int) (*Result, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildCrateQuery(q), limit, 0, false)
	searchRequest.SortBy([]string{"-_score"})
	searchRequest.Fields = []string{"id", "title", "artist", "genres"}

	searchResult, err := c.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  q,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		crateHit := Hit{Score: hit.Score}

		if id, ok := hit.Fields["id"].(string); ok {
			crateHit.ID, _ = strconv.ParseInt(id, 10, 64)
		}
		if title, ok := hit.Fields["title"].(string); ok {
			crateHit.Title = title
		}
		if artist, ok := hit.Fields["artist"].(string); ok {
			crateHit.Artist = artist
		}
		switch genres := hit.Fields["genres"].(type) {
		case string:
			crateHit.Genres = []string{genres}
		case []interface{}:
			for _, g := range genres {
				if s, ok := g.(string); ok {
					crateHit.Genres = append(crateHit.Genres, s)
				}
			}
		}

		result.Hits = append(result.Hits, crateHit)
	}

	return result, nil
}

// buildCrateQuery matches title and artist text, with fuzzy and prefix
// fallbacks for typo tolerance and autocomplete, plus an exact genre term.
func buildCrateQuery(q string) query.Query {
	if q == "" {
		return bleve.NewMatchAllQuery()
	}

	var queries []query.Query

	titleMatch := bleve.NewMatchQuery(q)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)
	queries = append(queries, titleMatch)

	artistMatch := bleve.NewMatchQuery(q)
	artistMatch.SetField("artist")
	artistMatch.SetBoost(2.0)
	queries = append(queries, artistMatch)

	fuzzyQuery := bleve.NewFuzzyQuery(q)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetField("title")
	fuzzyQuery.SetBoost(0.8)
	queries = append(queries, fuzzyQuery)

	if len(q) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(q))
		prefixQuery.SetField("artist")
		prefixQuery.SetBoost(0.5)
		queries = append(queries, prefixQuery)
	}

	genreTerm := bleve.NewTermQuery(q)
	genreTerm.SetField("genres")
	queries = append(queries, genreTerm)

	return bleve.NewDisjunctionQuery(queries...)
}
