package providers

import (
	"github.com/samber/do/v2"

	"github.com/literahq/litera-server/internal/config"
	"github.com/literahq/litera-server/internal/logger"
	"github.com/literahq/litera-server/internal/store"
)

// StoreHandle wraps the store for lifecycle management.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore provides the Badger-backed entity store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	s, err := store.New(cfg.StorePath(), log.Logger)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: s}, nil
}
