// Package di provides dependency injection configuration for the portal server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/f246632/rijeka-online/internal/auth"
	"github.com/f246632/rijeka-online/internal/config"
	"github.com/f246632/rijeka-online/internal/di/providers"
	"github.com/f246632/rijeka-online/internal/logger"
	"github.com/f246632/rijeka-online/internal/service"
	"github.com/f246632/rijeka-online/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideArticleService)
	do.Provide(injector, providers.ProvideListingService)
	do.Provide(injector, providers.ProvideCatalogService)

	// Workers
	do.Provide(injector, providers.ProvideScheduler)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.ArticleService](injector)
	_ = do.MustInvoke[*service.ListingService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SchedulerHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Rebuild the search index if it is empty but content exists
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
