package providers

import (
	"github.com/samber/do/v2"

	"github.com/dayplanapp/dayplan-server/internal/auth"
	"github.com/dayplanapp/dayplan-server/internal/logger"
	"github.com/dayplanapp/dayplan-server/internal/service"
)

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, log.Logger), nil
}

// ProvideTaskService provides the task service.
func ProvideTaskService(i do.Injector) (*service.TaskService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTaskService(storeHandle.Store, log.Logger), nil
}

// ProvideDayViewService provides the aggregated day view service.
func ProvideDayViewService(i do.Injector) (*service.DayViewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDayViewService(storeHandle.Store, log.Logger), nil
}

// ProvideAppointmentService provides the appointment service.
func ProvideAppointmentService(i do.Injector) (*service.AppointmentService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAppointmentService(storeHandle.Store, log.Logger), nil
}

// ProvidePlanningService provides the event planning service.
func ProvidePlanningService(i do.Injector) (*service.PlanningService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlanningService(storeHandle.Store, log.Logger), nil
}

// ProvideCycleService provides the cycle tracking service.
func ProvideCycleService(i do.Injector) (*service.CycleService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCycleService(storeHandle.Store, log.Logger), nil
}

// ProvideChecklistService provides the checklist service.
func ProvideChecklistService(i do.Injector) (*service.ChecklistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewChecklistService(storeHandle.Store, log.Logger), nil
}

// ProvideSocialService provides the peer sharing service.
func ProvideSocialService(i do.Injector) (*service.SocialService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSocialService(storeHandle.Store, log.Logger), nil
}

// ProvideQuickAddService provides the quick-add button service.
func ProvideQuickAddService(i do.Injector) (*service.QuickAddService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewQuickAddService(storeHandle.Store, log.Logger), nil
}
