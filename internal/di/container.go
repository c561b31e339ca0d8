// Package di provides dependency injection configuration for the Litera server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/literahq/litera-server/internal/auth"
	"github.com/literahq/litera-server/internal/config"
	"github.com/literahq/litera-server/internal/di/providers"
	"github.com/literahq/litera-server/internal/logger"
	"github.com/literahq/litera-server/internal/media/covers"
	"github.com/literahq/litera-server/internal/notify"
	"github.com/literahq/litera-server/internal/reminder"
	"github.com/literahq/litera-server/internal/service"
	"github.com/literahq/litera-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideCoverStorage)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideInteractionService)
	do.Provide(injector, providers.ProvideLoanService)
	do.Provide(injector, providers.ProvideRecommendationService)
	do.Provide(injector, providers.ProvideNotificationService)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvideCoverService)

	// Notification pipeline
	do.Provide(injector, providers.ProvideDispatcher)
	do.Provide(injector, providers.ProvideReminderScanner)
	do.Provide(injector, providers.ProvideReminderScheduler)

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
	_ = do.MustInvoke[*covers.Storage](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.InteractionService](injector)
	_ = do.MustInvoke[*service.LoanService](injector)
	_ = do.MustInvoke[*service.RecommendationService](injector)
	_ = do.MustInvoke[*service.NotificationService](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.CoverService](injector)

	// Notification pipeline
	_ = do.MustInvoke[*notify.Dispatcher](injector)
	_ = do.MustInvoke[*reminder.Scanner](injector)
	_ = do.MustInvoke[*providers.SchedulerHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
