// Package service implements collection retrieval and comparative
// analytics: paginated fetching, genre gap analysis, recommendation
// search, set comparison, and trade matching.
package service

import (
	"context"
	"log/slog"

	"github.com/waxmatchapp/waxmatch-server/internal/discogs"
	"github.com/waxmatchapp/waxmatch-server/internal/domain"
	apperrors "github.com/waxmatchapp/waxmatch-server/internal/errors"
	"github.com/waxmatchapp/waxmatch-server/internal/search"
)

// CollectionService fetches collections from Discogs and composes the
// two-party comparison pipeline.
type CollectionService struct {
	client  *discogs.Client
	fetcher *Fetcher
	trades  *TradeMatcher
	logger  *slog.Logger
}

// NewCollectionService creates a collection service.
func NewCollectionService(client *discogs.Client, fetcher *Fetcher, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		client:  client,
		fetcher: fetcher,
		trades:  NewTradeMatcher(client, logger),
		logger:  logger,
	}
}

// FetchCollection retrieves a user's collection up to the page cap.
// An empty token uses the public endpoint; otherwise the authenticated
// endpoint is used, which also covers private collections.
func (s *CollectionService) FetchCollection(ctx context.Context, username, token string) (domain.CollectionFetch, error) {
	client := s.client
	var pageFn PageFunc
	if token != "" {
		client = client.WithToken(token)
		pageFn = func(ctx context.Context, page, perPage int) ([]domain.Release, int, error) {
			result, err := client.GetCollection(ctx, username, discogs.DefaultFolder, page, perPage)
			if err != nil {
				return nil, 0, err
			}
			return result.Releases, result.Total, nil
		}
	} else {
		pageFn = func(ctx context.Context, page, perPage int) ([]domain.Release, int, error) {
			result, err := client.GetPublicCollection(ctx, username, page, perPage)
			if err != nil {
				return nil, 0, err
			}
			return result.Releases, result.Total, nil
		}
	}

	fetch, err := s.fetcher.FetchAll(ctx, pageFn)
	if err != nil {
		return domain.CollectionFetch{}, mapDiscogsError(err, username)
	}

	s.logger.Info("collection fetched",
		"username", username,
		"fetched", fetch.Fetched,
		"total", fetch.Total,
		"authenticated", token != "",
	)
	return fetch, nil
}

// SearchCrate fetches a collection and runs a full-text query over it.
func (s *CollectionService) SearchCrate(ctx context.Context, username, token, query string, limit int) (*search.Result, error) {
	fetch, err := s.FetchCollection(ctx, username, token)
	if err != nil {
		return nil, err
	}

	index, err := search.NewCrateIndex(fetch.Releases)
	if err != nil {
		return nil, apperrors.Internalf("build crate index: %v", err)
	}
	defer index.Close()

	result, err := index.Search(ctx, query, limit)
	if err != nil {
		return nil, apperrors.Internalf("crate search: %v", err)
	}
	return result, nil
}

// Comparison is the full two-party analysis: the set comparison plus both
// directional trade lists, with fetch counts so partial data is visible.
type Comparison struct {
	Result        domain.ComparisonResult   `json:"comparison"`
	IOffer        []domain.TradeOpportunity `json:"i_offer"`
	TheyOffer     []domain.TradeOpportunity `json:"they_offer"`
	MineFetched   int                       `json:"mine_fetched"`
	MineTotal     int                       `json:"mine_total"`
	TheirsFetched int                       `json:"theirs_fetched"`
	TheirsTotal   int                       `json:"theirs_total"`
}

// CompareCollections fetches both collections, partitions them by shared
// masters, and matches trades in both directions.
//
// My collection uses the caller's token when present; the other party's is
// always fetched publicly. Either fetch failing on its first page aborts
// the comparison, since there is nothing meaningful to compare against.
func (s *CollectionService) CompareCollections(ctx context.Context, myUsername, theirUsername, token string) (*Comparison, error) {
	mine, err := s.FetchCollection(ctx, myUsername, token)
	if err != nil {
		return nil, err
	}

	theirs, err := s.FetchCollection(ctx, theirUsername, "")
	if err != nil {
		return nil, err
	}

	result := Compare(mine.Releases, theirs.Releases)
	iOffer, theyOffer := s.trades.MatchTrades(ctx, myUsername, theirUsername, mine.Releases, theirs.Releases)

	s.logger.Info("collections compared",
		"mine", myUsername,
		"theirs", theirUsername,
		"score", result.CompatibilityScore,
		"i_offer", len(iOffer),
		"they_offer", len(theyOffer),
	)

	return &Comparison{
		Result:        result,
		IOffer:        iOffer,
		TheyOffer:     theyOffer,
		MineFetched:   mine.Fetched,
		MineTotal:     mine.Total,
		TheirsFetched: theirs.Fetched,
		TheirsTotal:   theirs.Total,
	}, nil
}

// mapDiscogsError converts catalog client sentinels into the application
// error taxonomy for the HTTP layer.
func mapDiscogsError(err error, username string) error {
	switch {
	case apperrors.Is(err, discogs.ErrNotFound):
		return apperrors.NotFoundf("user %q not found", username).WithCause(err)
	case apperrors.Is(err, discogs.ErrUnauthorized):
		return apperrors.Unauthorized("catalog rejected credentials").WithCause(err)
	case apperrors.Is(err, discogs.ErrRateLimited):
		return apperrors.ErrRateLimited.WithCause(err)
	case apperrors.Is(err, context.Canceled), apperrors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return apperrors.Upstream("catalog request failed", err)
	}
}
