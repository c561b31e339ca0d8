package providers

import (
	"github.com/samber/do/v2"

	"github.com/literahq/litera-server/internal/config"
	"github.com/literahq/litera-server/internal/logger"
	"github.com/literahq/litera-server/internal/notify"
	"github.com/literahq/litera-server/internal/push"
)

// ProvideDispatcher provides the notification dispatcher. The local
// channel is always on; the push channel joins when push delivery is
// configured.
func ProvideDispatcher(i do.Injector) (*notify.Dispatcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	channels := []notify.Channel{
		notify.NewLocalChannel(storeHandle.Store),
	}

	if cfg.Push.Enabled {
		client := push.NewClient(cfg.Push.Endpoint, cfg.Push.BearerToken, cfg.Push.Timeout, log.Logger)
		channels = append(channels, notify.NewPushChannel(storeHandle.Store, client, log.Logger))
	} else {
		log.Info("Push delivery disabled, notifications are local only")
	}

	return notify.NewDispatcher(log.Logger, channels...), nil
}
