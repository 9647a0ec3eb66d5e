// Package di provides dependency injection configuration for the WaxMatch server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/waxmatchapp/waxmatch-server/internal/config"
	"github.com/waxmatchapp/waxmatch-server/internal/di/providers"
	"github.com/waxmatchapp/waxmatch-server/internal/logger"
	"github.com/waxmatchapp/waxmatch-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideSessionStore)

	// Catalog layer
	do.Provide(injector, providers.ProvideDiscogsClient)

	// Business services
	do.Provide(injector, providers.ProvideFetcher)
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideRecommender)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of everything up to the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SessionStoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.DiscogsClientHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.CollectionService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.Recommender](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
