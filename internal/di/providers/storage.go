package providers

import (
	"github.com/samber/do/v2"

	"github.com/literahq/litera-server/internal/config"
	"github.com/literahq/litera-server/internal/media/covers"
)

// ProvideCoverStorage provides filesystem storage for cover images.
func ProvideCoverStorage(i do.Injector) (*covers.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return covers.NewStorage(cfg.CoversPath())
}
