package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/literahq/litera-server/internal/api"
	"github.com/literahq/litera-server/internal/config"
	"github.com/literahq/litera-server/internal/logger"
	"github.com/literahq/litera-server/internal/service"
)

// HTTPServerHandle wraps the HTTP server for lifecycle management.
type HTTPServerHandle struct {
	Server *http.Server
	logger *logger.Logger
}

// Start begins serving in a goroutine. Fatal listen errors are reported
// on the returned channel.
func (h *HTTPServerHandle) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("HTTP server listening", "addr", h.Server.Addr)
		if err := h.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the configured HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	scheduler := do.MustInvoke[*SchedulerHandle](i)

	services := api.Services{
		Auth:            do.MustInvoke[*service.AuthService](i),
		Books:           do.MustInvoke[*service.BookService](i),
		Loans:           do.MustInvoke[*service.LoanService](i),
		Interactions:    do.MustInvoke[*service.InteractionService](i),
		Recommendations: do.MustInvoke[*service.RecommendationService](i),
		Notifications:   do.MustInvoke[*service.NotificationService](i),
		Search:          do.MustInvoke[*service.SearchService](i),
		Covers:          do.MustInvoke[*service.CoverService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, scheduler.Scheduler, log.Logger)

	return &HTTPServerHandle{
		Server: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           handler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
		},
		logger: log,
	}, nil
}
