package providers

import (
	"github.com/samber/do/v2"

	"github.com/literahq/litera-server/internal/config"
	"github.com/literahq/litera-server/internal/logger"
	"github.com/literahq/litera-server/internal/search"
	"github.com/literahq/litera-server/internal/service"
)

// SearchIndexHandle wraps the bleve index for lifecycle management.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Index.Close()
}

// ProvideSearchIndex provides the catalog search index and hooks it into
// the store so writes are indexed as they happen.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	idx, err := search.NewIndex(search.Options{
		DataPath: cfg.SearchIndexPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetSearchIndexer(idx)

	return &SearchIndexHandle{Index: idx}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	return service.NewSearchService(indexHandle.Index, storeHandle.Store, log.Logger), nil
}
