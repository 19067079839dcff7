// Package di provides dependency injection configuration for the DayPlan server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/dayplanapp/dayplan-server/internal/auth"
	"github.com/dayplanapp/dayplan-server/internal/config"
	"github.com/dayplanapp/dayplan-server/internal/di/providers"
	"github.com/dayplanapp/dayplan-server/internal/logger"
	"github.com/dayplanapp/dayplan-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideTaskService)
	do.Provide(injector, providers.ProvideDayViewService)
	do.Provide(injector, providers.ProvideAppointmentService)
	do.Provide(injector, providers.ProvidePlanningService)
	do.Provide(injector, providers.ProvideCycleService)
	do.Provide(injector, providers.ProvideChecklistService)
	do.Provide(injector, providers.ProvideSocialService)
	do.Provide(injector, providers.ProvideQuickAddService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.TaskService](injector)
	_ = do.MustInvoke[*service.DayViewService](injector)
	_ = do.MustInvoke[*service.AppointmentService](injector)
	_ = do.MustInvoke[*service.PlanningService](injector)
	_ = do.MustInvoke[*service.CycleService](injector)
	_ = do.MustInvoke[*service.ChecklistService](injector)
	_ = do.MustInvoke[*service.SocialService](injector)
	_ = do.MustInvoke[*service.QuickAddService](injector)

	// Server last, so everything it depends on is ready before it listens.
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
