// Package api provides the HTTP API server and handlers for the Litera
// library server.
package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/literahq/litera-server/internal/errors"
	"github.com/literahq/litera-server/internal/http/response"
	"github.com/literahq/litera-server/internal/ratelimit"
	"github.com/literahq/litera-server/internal/service"
	"github.com/literahq/litera-server/internal/store"
)

// reminderTrigger kicks off an immediate reminder scan. Satisfied by
// reminder.Scheduler; nil-able for tests and setups without scheduling.
type reminderTrigger interface {
	TriggerNow()
}

// Services bundles the handler dependencies.
type Services struct {
	Auth            *service.AuthService
	Books           *service.BookService
	Loans           *service.LoanService
	Interactions    *service.InteractionService
	Recommendations *service.RecommendationService
	Notifications   *service.NotificationService
	Search          *service.SearchService
	Covers          *service.CoverService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       *store.Store
	services    Services
	reminders   reminderTrigger
	authLimiter *ratelimit.KeyedRateLimiter
	router      *chi.Mux
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// reminders may be nil when no scheduler is running.
func NewServer(store *store.Store, services Services, reminders reminderTrigger, logger *slog.Logger) *Server {
	s := &Server{
		store:     store,
		services:  services,
		reminders: reminders,
		// 10 auth attempts per minute per IP, burst of 5.
		authLimiter: ratelimit.New(10.0/60.0, 5),
		router:      chi.NewRouter(),
		logger:      logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public, rate limited by IP).
		r.Route("/auth", func(r chi.Router) {
			r.Use(s.rateLimitByIP(s.authLimiter))
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		// Protected user endpoints.
		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.handleGetCurrentUser)
		})

		// Catalog. Reads for every member, writes for admins.
		r.Route("/books", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListBooks)
			r.Get("/{id}", s.handleGetBook)
			r.Get("/{id}/cover", s.handleGetCover)

			r.Post("/{id}/borrow", s.handleRequestBorrow)

			r.Post("/{id}/view", s.handleRecordView)
			r.Post("/{id}/rating", s.handleRecordRating)
			r.Post("/{id}/favorite", s.handleRecordFavorite)
			r.Post("/{id}/search-hit", s.handleRecordSearchHit)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Post("/", s.handleCreateBook)
				r.Patch("/{id}", s.handleUpdateBook)
				r.Delete("/{id}", s.handleDeleteBook)
				r.Post("/{id}/cover", s.handleFetchCover)
				r.Delete("/{id}/cover", s.handleDeleteCover)
			})
		})

		// Loans.
		r.Route("/loans", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListMyLoans)
			r.Get("/{id}", s.handleGetLoan)
			r.Post("/{id}/return", s.handleRequestReturn)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Post("/{id}/confirm-borrow", s.handleConfirmBorrow)
				r.Post("/{id}/confirm-return", s.handleConfirmReturn)
			})
		})

		// Search and recommendations.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/search", s.handleSearch)
			r.Get("/recommendations", s.handleRecommendations)
		})

		// Notifications and push device tokens.
		r.Route("/notifications", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListNotifications)
			r.Get("/unread-count", s.handleUnreadCount)
			r.Post("/read-all", s.handleMarkAllRead)
			r.Post("/{id}/read", s.handleMarkRead)
		})
		r.Route("/devices", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleRegisterDevice)
			r.Delete("/{token}", s.handleRemoveDevice)
		})

		// Admin operations.
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Use(s.requireAdmin)
			r.Get("/loans", s.handleListLoansByStatus)
			r.Post("/reminders/run", s.handleRunReminders)
			r.Post("/search/reindex", s.handleReindex)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}

// decodeBody unmarshals a JSON request body into dst.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		response.HandleError(w, errors.Validation("invalid request body").WithCause(err), s.logger)
		return false
	}
	return true
}
