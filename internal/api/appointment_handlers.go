package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dayplanapp/dayplan-server/internal/http/response"
	"github.com/dayplanapp/dayplan-server/internal/service"
)

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAppointmentRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	appt, err := s.appointmentService.CreateAppointment(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, appt, s.logger)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := s.appointmentService.ListAppointments(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, appts, s.logger)
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateAppointmentRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	appt, err := s.appointmentService.UpdateAppointment(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, appt, s.logger)
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := s.appointmentService.DeleteAppointment(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleCreatePregnancyAppointment(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePregnancyAppointmentRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	appt, err := s.appointmentService.CreatePregnancyAppointment(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, appt, s.logger)
}

func (s *Server) handleListPregnancyAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := s.appointmentService.ListPregnancyAppointments(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, appts, s.logger)
}

func (s *Server) handleUpdatePregnancyAppointment(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePregnancyAppointmentRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	appt, err := s.appointmentService.UpdatePregnancyAppointment(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, appt, s.logger)
}

func (s *Server) handleDeletePregnancyAppointment(w http.ResponseWriter, r *http.Request) {
	if err := s.appointmentService.DeletePregnancyAppointment(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleCreateWeddingTask(w http.ResponseWriter, r *http.Request) {
	var req service.CreateWeddingTaskRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	task, err := s.appointmentService.CreateWeddingTask(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, task, s.logger)
}

func (s *Server) handleListWeddingTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.appointmentService.ListWeddingTasks(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tasks, s.logger)
}

func (s *Server) handleUpdateWeddingTask(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateWeddingTaskRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	task, err := s.appointmentService.UpdateWeddingTask(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, task, s.logger)
}

func (s *Server) handleDeleteWeddingTask(w http.ResponseWriter, r *http.Request) {
	if err := s.appointmentService.DeleteWeddingTask(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
