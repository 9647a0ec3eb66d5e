package providers

import (
	"github.com/samber/do/v2"

	"github.com/waxmatchapp/waxmatch-server/internal/config"
	"github.com/waxmatchapp/waxmatch-server/internal/logger"
	"github.com/waxmatchapp/waxmatch-server/internal/service"
)

// ProvideFetcher provides the paginated collection fetcher.
func ProvideFetcher(i do.Injector) (*service.Fetcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFetcher(
		cfg.Discogs.PerPage,
		cfg.Discogs.MaxPages,
		cfg.Discogs.PageDelay,
		log.Logger,
	), nil
}

// ProvideCollectionService provides the collection retrieval and comparison service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	clientHandle := do.MustInvoke[*DiscogsClientHandle](i)
	fetcher := do.MustInvoke[*service.Fetcher](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(clientHandle.Client, fetcher, log.Logger), nil
}

// ProvideRecommender provides the recommendation engine.
func ProvideRecommender(i do.Injector) (*service.Recommender, error) {
	clientHandle := do.MustInvoke[*DiscogsClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommender(clientHandle.Client, log.Logger), nil
}
