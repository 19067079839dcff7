package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/dayplanapp/dayplan-server/internal/api"
	"github.com/dayplanapp/dayplan-server/internal/config"
	"github.com/dayplanapp/dayplan-server/internal/logger"
	"github.com/dayplanapp/dayplan-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// Get all services
	authService := do.MustInvoke[*service.AuthService](i)
	taskService := do.MustInvoke[*service.TaskService](i)
	dayViewService := do.MustInvoke[*service.DayViewService](i)
	appointmentService := do.MustInvoke[*service.AppointmentService](i)
	planningService := do.MustInvoke[*service.PlanningService](i)
	cycleService := do.MustInvoke[*service.CycleService](i)
	checklistService := do.MustInvoke[*service.ChecklistService](i)
	socialService := do.MustInvoke[*service.SocialService](i)
	quickAddService := do.MustInvoke[*service.QuickAddService](i)

	handler := api.NewServer(
		storeHandle.Store,
		authService,
		taskService,
		dayViewService,
		appointmentService,
		planningService,
		cycleService,
		checklistService,
		socialService,
		quickAddService,
		cfg.Server.AllowedOrigins,
		log.Logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
