package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
)

const (
	defaultPerPage   = 100
	maxFetchPages    = 5
	defaultPageDelay = 100 * time.Millisecond
)

// PageFunc fetches one page of a paginated catalog resource, returning the
// page's items and the service-reported total item count.
type PageFunc func(ctx context.Context, page, perPage int) (items []domain.Release, total int, err error)

// SleepFunc suspends between page requests. Injectable so tests can run
// the pagination loop without real time passing.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Fetcher accumulates paginated catalog results under a page cap.
//
// Pages are fetched serially with an inter-page delay. The external
// service rate-limits per account, so fanning pages out in parallel would
// only trigger throttling; the delay is cooperative backpressure.
type Fetcher struct {
	perPage   int
	maxPages  int
	pageDelay time.Duration
	sleep     SleepFunc
	logger    *slog.Logger
}

// NewFetcher creates a fetcher with the given pagination policy.
// Out-of-range values are clamped to the service limits.
func NewFetcher(perPage, maxPages int, pageDelay time.Duration, logger *slog.Logger) *Fetcher {
	if perPage < 1 || perPage > defaultPerPage {
		perPage = defaultPerPage
	}
	if maxPages < 1 || maxPages > maxFetchPages {
		maxPages = maxFetchPages
	}
	if pageDelay < 0 {
		pageDelay = defaultPageDelay
	}

	return &Fetcher{
		perPage:   perPage,
		maxPages:  maxPages,
		pageDelay: pageDelay,
		sleep:     sleepWithContext,
		logger:    logger,
	}
}

// FetchAll drains a paginated resource through fn, up to the page cap.
//
// Page 1 failures propagate: nothing useful exists without it. Failures on
// later pages return the pages fetched so far; a partial result with
// Fetched < Total is valid output the caller can surface, not an error.
func (f *Fetcher) FetchAll(ctx context.Context, fn PageFunc) (domain.CollectionFetch, error) {
	items, total, err := fn(ctx, 1, f.perPage)
	if err != nil {
		return domain.CollectionFetch{}, err
	}

	all := make([]domain.Release, 0, total)
	all = append(all, items...)

	pagesToFetch := (total + f.perPage - 1) / f.perPage
	if pagesToFetch > f.maxPages {
		pagesToFetch = f.maxPages
	}

	for page := 2; page <= pagesToFetch; page++ {
		if err := f.sleep(ctx, f.pageDelay); err != nil {
			f.logger.Warn("pagination cancelled", "page", page, "error", err)
			break
		}

		items, _, err := fn(ctx, page, f.perPage)
		if err != nil {
			f.logger.Warn("page fetch failed, returning partial collection",
				"page", page,
				"fetched", len(all),
				"total", total,
				"error", err,
			)
			break
		}
		all = append(all, items...)
	}

	return domain.CollectionFetch{
		Releases: all,
		Total:    total,
		Fetched:  len(all),
	}, nil
}
