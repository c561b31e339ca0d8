// Package main provides the entry point for the Litera server application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/literahq/litera-server/internal/di"
	"github.com/literahq/litera-server/internal/di/providers"
	"github.com/literahq/litera-server/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Start the daily reminder schedule.
	scheduler := do.MustInvoke[*providers.SchedulerHandle](injector)
	scheduler.Start()

	// Start serving.
	server := do.MustInvoke[*providers.HTTPServerHandle](injector)
	serverErr := server.Start()

	// Wait for shutdown signal or a fatal server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErr:
		log.Error("HTTP server failed", "error", err)
	}

	log.Info("Shutting down server gracefully...")

	// Services implementing do.Shutdownable are stopped in reverse
	// dependency order: server first, then scheduler, index, store.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Goodbye")
}
