package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
)

// WantlistFetcher retrieves a user's wantlist from the catalog.
type WantlistFetcher interface {
	GetWantlist(ctx context.Context, username string) ([]domain.WantEntry, error)
}

// TradeMatcher cross-references collections against wantlists to find
// feasible trades in both directions.
type TradeMatcher struct {
	wantlists WantlistFetcher
	logger    *slog.Logger
}

// NewTradeMatcher creates a trade matcher backed by the given wantlist source.
func NewTradeMatcher(wantlists WantlistFetcher, logger *slog.Logger) *TradeMatcher {
	return &TradeMatcher{
		wantlists: wantlists,
		logger:    logger,
	}
}

// MatchTrades fetches both wantlists concurrently and returns the two
// directional opportunity lists: items I hold that they want, and items
// they hold that I want.
//
// The two fetches are independent. If one fails, that direction's list
// comes back empty and the other direction is unaffected.
func (m *TradeMatcher) MatchTrades(ctx context.Context, myUsername, theirUsername string, myCollection, theirCollection []domain.Release) (iOffer, theyOffer []domain.TradeOpportunity) {
	var (
		wg            sync.WaitGroup
		myWantlist    []domain.WantEntry
		theirWantlist []domain.WantEntry
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		wants, err := m.wantlists.GetWantlist(ctx, myUsername)
		if err != nil {
			m.logger.Warn("wantlist fetch failed, skipping trade direction",
				"username", myUsername,
				"error", err,
			)
			return
		}
		myWantlist = wants
	}()
	go func() {
		defer wg.Done()
		wants, err := m.wantlists.GetWantlist(ctx, theirUsername)
		if err != nil {
			m.logger.Warn("wantlist fetch failed, skipping trade direction",
				"username", theirUsername,
				"error", err,
			)
			return
		}
		theirWantlist = wants
	}()
	wg.Wait()

	iOffer = matchDirection(myCollection, theirWantlist)
	theyOffer = matchDirection(theirCollection, myWantlist)
	return iOffer, theyOffer
}

// matchDirection pairs held items with wantlist entries sharing a master ID.
// Duplicate masters in the wantlist resolve to the earliest entry.
func matchDirection(collection []domain.Release, wantlist []domain.WantEntry) []domain.TradeOpportunity {
	wanted := make(map[int64]domain.WantEntry, len(wantlist))
	for _, want := range wantlist {
		if want.MasterID == 0 {
			continue
		}
		if _, exists := wanted[want.MasterID]; !exists {
			wanted[want.MasterID] = want
		}
	}

	opportunities := []domain.TradeOpportunity{}
	for _, item := range collection {
		id, ok := item.JoinKey()
		if !ok {
			continue
		}
		if want, match := wanted[id]; match {
			opportunities = append(opportunities, domain.TradeOpportunity{
				Item: item,
				Want: want,
			})
		}
	}

	return opportunities
}
