// Package api provides the HTTP API server and handlers for the DayPlan
// application.
package api

import (
	json "github.com/go-json-experiment/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dayplanapp/dayplan-server/internal/ratelimit"
	"github.com/dayplanapp/dayplan-server/internal/service"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

// shareRateRPS limits the public share-resolution endpoint per client IP.
// Tokens are unguessable, but the endpoint is unauthenticated so probing
// should stay expensive.
const (
	shareRateRPS   = 1.0
	shareRateBurst = 10
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store              store.Store
	authService        *service.AuthService
	taskService        *service.TaskService
	dayViewService     *service.DayViewService
	appointmentService *service.AppointmentService
	planningService    *service.PlanningService
	cycleService       *service.CycleService
	checklistService   *service.ChecklistService
	socialService      *service.SocialService
	quickAddService    *service.QuickAddService
	shareLimiter       *ratelimit.KeyedRateLimiter
	allowedOrigins     []string
	router             *chi.Mux
	logger             *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	st store.Store,
	authService *service.AuthService,
	taskService *service.TaskService,
	dayViewService *service.DayViewService,
	appointmentService *service.AppointmentService,
	planningService *service.PlanningService,
	cycleService *service.CycleService,
	checklistService *service.ChecklistService,
	socialService *service.SocialService,
	quickAddService *service.QuickAddService,
	allowedOrigins []string,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:              st,
		authService:        authService,
		taskService:        taskService,
		dayViewService:     dayViewService,
		appointmentService: appointmentService,
		planningService:    planningService,
		cycleService:       cycleService,
		checklistService:   checklistService,
		socialService:      socialService,
		quickAddService:    quickAddService,
		shareLimiter:       ratelimit.New(shareRateRPS, shareRateBurst),
		allowedOrigins:     allowedOrigins,
		router:             chi.NewRouter(),
		logger:             logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops background workers owned by the server.
func (s *Server) Close() {
	s.shareLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
		})

		// Public shared-checklist resolution, rate limited by client IP.
		r.With(s.rateLimitByIP(s.shareLimiter)).
			Get("/share/{token}", s.handleResolveSharedChecklist)

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/users/me", s.handleGetCurrentUser)

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", s.handleCreateTask)
				r.Get("/", s.handleListTasks)
				r.Get("/{id}", s.handleGetTask)
				r.Patch("/{id}", s.handleUpdateTask)
				r.Delete("/{id}", s.handleDeleteTask)
				r.Post("/{id}/toggle", s.handleToggleTask)
				r.Get("/{id}/subtasks", s.handleListSubtasks)
			})

			r.Get("/calendar/day/{date}", s.handleGetDayView)

			r.Route("/appointments", func(r chi.Router) {
				r.Post("/", s.handleCreateAppointment)
				r.Get("/", s.handleListAppointments)
				r.Patch("/{id}", s.handleUpdateAppointment)
				r.Delete("/{id}", s.handleDeleteAppointment)
			})

			r.Route("/cycle", func(r chi.Router) {
				r.Post("/entries", s.handleCreateCycleEntry)
				r.Get("/entries", s.handleListCycleEntries)
				r.Post("/entries/{id}/close", s.handleCloseCycleEntry)
				r.Delete("/entries/{id}", s.handleDeleteCycleEntry)
				r.Get("/summary", s.handleCycleSummary)
				r.Post("/symptoms", s.handleCreateSymptomLog)
				r.Get("/symptoms", s.handleListSymptomLogs)
				r.Delete("/symptoms/{id}", s.handleDeleteSymptomLog)
			})

			r.Route("/pregnancy", func(r chi.Router) {
				r.Get("/info", s.handleGetPregnancyInfo)
				r.Put("/info", s.handleSavePregnancyInfo)
				r.Get("/progress", s.handlePregnancyProgress)
				r.Post("/appointments", s.handleCreatePregnancyAppointment)
				r.Get("/appointments", s.handleListPregnancyAppointments)
				r.Patch("/appointments/{id}", s.handleUpdatePregnancyAppointment)
				r.Delete("/appointments/{id}", s.handleDeletePregnancyAppointment)
			})

			r.Route("/wedding", func(r chi.Router) {
				r.Get("/info", s.handleGetWeddingInfo)
				r.Put("/info", s.handleSaveWeddingInfo)
				r.Post("/tasks", s.handleCreateWeddingTask)
				r.Get("/tasks", s.handleListWeddingTasks)
				r.Patch("/tasks/{id}", s.handleUpdateWeddingTask)
				r.Delete("/tasks/{id}", s.handleDeleteWeddingTask)
				r.Post("/vendors", s.handleCreateVendor)
				r.Get("/vendors", s.handleListVendors)
				r.Patch("/vendors/{id}", s.handleUpdateVendor)
				r.Delete("/vendors/{id}", s.handleDeleteVendor)
			})

			r.Route("/babyshower", func(r chi.Router) {
				r.Get("/info", s.handleGetBabyShowerInfo)
				r.Put("/info", s.handleSaveBabyShowerInfo)
			})

			r.Route("/guests", func(r chi.Router) {
				r.Post("/", s.handleCreateGuest)
				r.Get("/", s.handleListGuests)
				r.Patch("/{id}", s.handleUpdateGuest)
				r.Delete("/{id}", s.handleDeleteGuest)
			})

			r.Route("/checklist", func(r chi.Router) {
				r.Post("/categories", s.handleCreateChecklistCategory)
				r.Get("/categories", s.handleListChecklistCategories)
				r.Patch("/categories/{id}", s.handleRenameChecklistCategory)
				r.Delete("/categories/{id}", s.handleDeleteChecklistCategory)
				r.Post("/categories/{id}/share", s.handleShareChecklistCategory)
				r.Delete("/categories/{id}/share", s.handleRevokeChecklistShare)
				r.Post("/categories/{id}/items", s.handleCreateChecklistItem)
				r.Get("/categories/{id}/items", s.handleListChecklistItems)
				r.Patch("/items/{id}", s.handleUpdateChecklistItem)
				r.Delete("/items/{id}", s.handleDeleteChecklistItem)
			})

			r.Route("/peers", func(r chi.Router) {
				r.Post("/", s.handleInvitePeer)
				r.Get("/", s.handleListPeers)
				r.Post("/{id}/accept", s.handleAcceptPeer)
				r.Delete("/{id}", s.handleRemovePeer)
			})

			r.Route("/sync-preferences", func(r chi.Router) {
				r.Get("/", s.handleListSyncPreferences)
				r.Put("/", s.handleSetSyncPreference)
			})

			r.Route("/fitness", func(r chi.Router) {
				r.Get("/activities", s.handleVisibleFitnessActivities)
				r.Post("/activities/{id}/join", s.handleJoinActivity)
				r.Delete("/activities/{id}/join", s.handleLeaveActivity)
			})

			r.Route("/quickadd", func(r chi.Router) {
				r.Post("/", s.handleCreateQuickAdd)
				r.Get("/", s.handleListQuickAdd)
				r.Patch("/{id}", s.handleUpdateQuickAdd)
				r.Delete("/{id}", s.handleDeleteQuickAdd)
			})
		})
	})
}

// decode reads a JSON request body into dst.
func (s *Server) decode(r *http.Request, dst any) error {
	return json.UnmarshalRead(r.Body, dst)
}
