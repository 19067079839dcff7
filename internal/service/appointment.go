package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	domainerrors "github.com/dayplanapp/dayplan-server/internal/errors"
	"github.com/dayplanapp/dayplan-server/internal/id"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

// AppointmentService manages plain appointments, pregnancy appointments, and
// wedding tasks. All three are appointment-shaped and surface in the day view.
type AppointmentService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(st store.Store, logger *slog.Logger) *AppointmentService {
	return &AppointmentService{store: st, logger: logger}
}

// CreateAppointmentRequest contains the data for a new appointment.
type CreateAppointmentRequest struct {
	Title    string `json:"title" validate:"required,max=500"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty" validate:"max=500"`
	Notes    string `json:"notes,omitempty" validate:"max=2000"`
}

// UpdateAppointmentRequest contains the editable fields of an appointment.
type UpdateAppointmentRequest struct {
	Title     *string `json:"title,omitempty"`
	Date      *string `json:"date,omitempty"`
	Time      *string `json:"time,omitempty"`
	Location  *string `json:"location,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// CreatePregnancyAppointmentRequest contains the data for a new pregnancy
// appointment.
type CreatePregnancyAppointmentRequest struct {
	Title    string `json:"title" validate:"required,max=500"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time,omitempty"`
	Doctor   string `json:"doctor,omitempty" validate:"max=200"`
	Location string `json:"location,omitempty" validate:"max=500"`
	Notes    string `json:"notes,omitempty" validate:"max=2000"`
}

// UpdatePregnancyAppointmentRequest contains the editable fields of a
// pregnancy appointment.
type UpdatePregnancyAppointmentRequest struct {
	Title     *string `json:"title,omitempty"`
	Date      *string `json:"date,omitempty"`
	Time      *string `json:"time,omitempty"`
	Doctor    *string `json:"doctor,omitempty"`
	Location  *string `json:"location,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// CreateWeddingTaskRequest contains the data for a new wedding task.
type CreateWeddingTaskRequest struct {
	Title    string `json:"title" validate:"required,max=500"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time,omitempty"`
	Vendor   string `json:"vendor,omitempty" validate:"max=200"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Notes    string `json:"notes,omitempty" validate:"max=2000"`
}

// UpdateWeddingTaskRequest contains the editable fields of a wedding task.
type UpdateWeddingTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Date      *string `json:"date,omitempty"`
	Time      *string `json:"time,omitempty"`
	Vendor    *string `json:"vendor,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func validateDateTime(date, timeStr string) error {
	if date != "" && !domain.ValidDate(date) {
		return domainerrors.Validation("date must be YYYY-MM-DD")
	}
	if timeStr != "" && !domain.ValidTime(timeStr) {
		return domainerrors.Validation("time must be HH:MM")
	}
	return nil
}

// CreateAppointment creates a plain appointment.
func (s *AppointmentService) CreateAppointment(ctx context.Context, ownerID string, req CreateAppointmentRequest) (*domain.Appointment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if err := validateDateTime(req.Date, req.Time); err != nil {
		return nil, err
	}

	apptID, err := id.Generate("appt")
	if err != nil {
		return nil, fmt.Errorf("generate appointment ID: %w", err)
	}

	appt := &domain.Appointment{
		OwnerID:  ownerID,
		Title:    req.Title,
		Date:     req.Date,
		Time:     req.Time,
		Location: req.Location,
		Notes:    req.Notes,
	}
	appt.ID = apptID
	appt.InitTimestamps()

	if err := s.store.CreateAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appt, nil
}

// UpdateAppointment edits an appointment.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, ownerID, apptID string, req UpdateAppointmentRequest) (*domain.Appointment, error) {
	appt, err := s.getOwnedAppointment(ctx, ownerID, apptID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, domainerrors.Validation("title cannot be empty")
		}
		appt.Title = *req.Title
	}
	if req.Date != nil {
		if !domain.ValidDate(*req.Date) {
			return nil, domainerrors.Validation("date must be YYYY-MM-DD")
		}
		appt.Date = *req.Date
	}
	if req.Time != nil {
		if *req.Time != "" && !domain.ValidTime(*req.Time) {
			return nil, domainerrors.Validation("time must be HH:MM")
		}
		appt.Time = *req.Time
	}
	if req.Location != nil {
		appt.Location = *req.Location
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}
	if req.Completed != nil {
		appt.Completed = *req.Completed
	}
	appt.Touch()

	if err := s.store.UpdateAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return appt, nil
}

// DeleteAppointment removes an appointment.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, ownerID, apptID string) error {
	if _, err := s.getOwnedAppointment(ctx, ownerID, apptID); err != nil {
		return err
	}
	if err := s.store.DeleteAppointment(ctx, apptID); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

// ListAppointments returns the owner's appointments.
func (s *AppointmentService) ListAppointments(ctx context.Context, ownerID string) ([]*domain.Appointment, error) {
	appts, err := s.store.ListAppointments(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// CreatePregnancyAppointment creates a pregnancy appointment.
func (s *AppointmentService) CreatePregnancyAppointment(ctx context.Context, ownerID string, req CreatePregnancyAppointmentRequest) (*domain.PregnancyAppointment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if err := validateDateTime(req.Date, req.Time); err != nil {
		return nil, err
	}

	apptID, err := id.Generate("pregappt")
	if err != nil {
		return nil, fmt.Errorf("generate appointment ID: %w", err)
	}

	appt := &domain.PregnancyAppointment{
		OwnerID:  ownerID,
		Title:    req.Title,
		Date:     req.Date,
		Time:     req.Time,
		Doctor:   req.Doctor,
		Location: req.Location,
		Notes:    req.Notes,
	}
	appt.ID = apptID
	appt.InitTimestamps()

	if err := s.store.CreatePregnancyAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("create pregnancy appointment: %w", err)
	}
	return appt, nil
}

// UpdatePregnancyAppointment edits a pregnancy appointment.
func (s *AppointmentService) UpdatePregnancyAppointment(ctx context.Context, ownerID, apptID string, req UpdatePregnancyAppointmentRequest) (*domain.PregnancyAppointment, error) {
	appt, err := s.getOwnedPregnancyAppointment(ctx, ownerID, apptID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, domainerrors.Validation("title cannot be empty")
		}
		appt.Title = *req.Title
	}
	if req.Date != nil {
		if !domain.ValidDate(*req.Date) {
			return nil, domainerrors.Validation("date must be YYYY-MM-DD")
		}
		appt.Date = *req.Date
	}
	if req.Time != nil {
		if *req.Time != "" && !domain.ValidTime(*req.Time) {
			return nil, domainerrors.Validation("time must be HH:MM")
		}
		appt.Time = *req.Time
	}
	if req.Doctor != nil {
		appt.Doctor = *req.Doctor
	}
	if req.Location != nil {
		appt.Location = *req.Location
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}
	if req.Completed != nil {
		appt.Completed = *req.Completed
	}
	appt.Touch()

	if err := s.store.UpdatePregnancyAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("update pregnancy appointment: %w", err)
	}
	return appt, nil
}

// DeletePregnancyAppointment removes a pregnancy appointment.
func (s *AppointmentService) DeletePregnancyAppointment(ctx context.Context, ownerID, apptID string) error {
	if _, err := s.getOwnedPregnancyAppointment(ctx, ownerID, apptID); err != nil {
		return err
	}
	if err := s.store.DeletePregnancyAppointment(ctx, apptID); err != nil {
		return fmt.Errorf("delete pregnancy appointment: %w", err)
	}
	return nil
}

// ListPregnancyAppointments returns the owner's pregnancy appointments.
func (s *AppointmentService) ListPregnancyAppointments(ctx context.Context, ownerID string) ([]*domain.PregnancyAppointment, error) {
	appts, err := s.store.ListPregnancyAppointments(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list pregnancy appointments: %w", err)
	}
	return appts, nil
}

// CreateWeddingTask creates a wedding task. Priority defaults to medium.
func (s *AppointmentService) CreateWeddingTask(ctx context.Context, ownerID string, req CreateWeddingTaskRequest) (*domain.WeddingTask, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if err := validateDateTime(req.Date, req.Time); err != nil {
		return nil, err
	}

	priority := domain.WeddingTaskPriorityMedium
	if req.Priority != "" {
		priority = domain.WeddingTaskPriority(req.Priority)
	}

	taskID, err := id.Generate("wedtask")
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	task := &domain.WeddingTask{
		OwnerID:  ownerID,
		Title:    req.Title,
		Date:     req.Date,
		Time:     req.Time,
		Vendor:   req.Vendor,
		Priority: priority,
		Notes:    req.Notes,
	}
	task.ID = taskID
	task.InitTimestamps()

	if err := s.store.CreateWeddingTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create wedding task: %w", err)
	}
	return task, nil
}

// UpdateWeddingTask edits a wedding task.
func (s *AppointmentService) UpdateWeddingTask(ctx context.Context, ownerID, taskID string, req UpdateWeddingTaskRequest) (*domain.WeddingTask, error) {
	task, err := s.getOwnedWeddingTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, domainerrors.Validation("title cannot be empty")
		}
		task.Title = *req.Title
	}
	if req.Date != nil {
		if !domain.ValidDate(*req.Date) {
			return nil, domainerrors.Validation("date must be YYYY-MM-DD")
		}
		task.Date = *req.Date
	}
	if req.Time != nil {
		if *req.Time != "" && !domain.ValidTime(*req.Time) {
			return nil, domainerrors.Validation("time must be HH:MM")
		}
		task.Time = *req.Time
	}
	if req.Vendor != nil {
		task.Vendor = *req.Vendor
	}
	if req.Priority != nil {
		priority := domain.WeddingTaskPriority(*req.Priority)
		if !priority.Valid() {
			return nil, domainerrors.Validationf("unknown priority %q", *req.Priority)
		}
		task.Priority = priority
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	task.Touch()

	if err := s.store.UpdateWeddingTask(ctx, task); err != nil {
		return nil, fmt.Errorf("update wedding task: %w", err)
	}
	return task, nil
}

// DeleteWeddingTask removes a wedding task.
func (s *AppointmentService) DeleteWeddingTask(ctx context.Context, ownerID, taskID string) error {
	if _, err := s.getOwnedWeddingTask(ctx, ownerID, taskID); err != nil {
		return err
	}
	if err := s.store.DeleteWeddingTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete wedding task: %w", err)
	}
	return nil
}

// ListWeddingTasks returns the owner's wedding tasks.
func (s *AppointmentService) ListWeddingTasks(ctx context.Context, ownerID string) ([]*domain.WeddingTask, error) {
	tasks, err := s.store.ListWeddingTasks(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wedding tasks: %w", err)
	}
	return tasks, nil
}

func (s *AppointmentService) getOwnedAppointment(ctx context.Context, ownerID, apptID string) (*domain.Appointment, error) {
	appt, err := s.store.GetAppointment(ctx, apptID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("appointment not found")
		}
		return nil, err
	}
	if appt.OwnerID != ownerID {
		return nil, domainerrors.NotFound("appointment not found")
	}
	return appt, nil
}

func (s *AppointmentService) getOwnedPregnancyAppointment(ctx context.Context, ownerID, apptID string) (*domain.PregnancyAppointment, error) {
	appt, err := s.store.GetPregnancyAppointment(ctx, apptID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("appointment not found")
		}
		return nil, err
	}
	if appt.OwnerID != ownerID {
		return nil, domainerrors.NotFound("appointment not found")
	}
	return appt, nil
}

func (s *AppointmentService) getOwnedWeddingTask(ctx context.Context, ownerID, taskID string) (*domain.WeddingTask, error) {
	task, err := s.store.GetWeddingTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("wedding task not found")
		}
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, domainerrors.NotFound("wedding task not found")
	}
	return task, nil
}
