package providers

import (
	"github.com/samber/do/v2"

	"github.com/literahq/litera-server/internal/auth"
	"github.com/literahq/litera-server/internal/logger"
	"github.com/literahq/litera-server/internal/media/covers"
	"github.com/literahq/litera-server/internal/service"
	"github.com/literahq/litera-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthService provides the auth service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	v := do.MustInvoke[*validation.Validator](i)

	return service.NewAuthService(storeHandle.Store, tokens, v, log.Logger), nil
}

// ProvideBookService provides the catalog service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)

	return service.NewBookService(storeHandle.Store, v, log.Logger), nil
}

// ProvideInteractionService provides the interaction recorder.
func ProvideInteractionService(i do.Injector) (*service.InteractionService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewInteractionService(storeHandle.Store, log.Logger), nil
}

// ProvideLoanService provides the loan service.
func ProvideLoanService(i do.Injector) (*service.LoanService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	interactions := do.MustInvoke[*service.InteractionService](i)

	return service.NewLoanService(storeHandle.Store, interactions, log.Logger), nil
}

// ProvideRecommendationService provides the recommendation service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewRecommendationService(storeHandle.Store, log.Logger), nil
}

// ProvideNotificationService provides the notification service.
func ProvideNotificationService(i do.Injector) (*service.NotificationService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewNotificationService(storeHandle.Store, log.Logger), nil
}

// ProvideCoverService provides the cover service.
func ProvideCoverService(i do.Injector) (*service.CoverService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	storage := do.MustInvoke[*covers.Storage](i)

	return service.NewCoverService(storeHandle.Store, storage, log.Logger), nil
}
