package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dayplanapp/dayplan-server/internal/http/response"
	"github.com/dayplanapp/dayplan-server/internal/service"
)

func (s *Server) handleCreateCycleEntry(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCycleEntryRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	entry, err := s.cycleService.CreateEntry(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, entry, s.logger)
}

func (s *Server) handleListCycleEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.cycleService.ListEntries(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, entries, s.logger)
}

func (s *Server) handleCloseCycleEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EndDate string `json:"end_date"`
	}
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	entry, err := s.cycleService.CloseEntry(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.EndDate)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, entry, s.logger)
}

func (s *Server) handleDeleteCycleEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.cycleService.DeleteEntry(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleCycleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.cycleService.Summary(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, summary, s.logger)
}

func (s *Server) handleCreateSymptomLog(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSymptomLogRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	log, err := s.cycleService.CreateSymptomLog(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, log, s.logger)
}

func (s *Server) handleListSymptomLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.cycleService.ListSymptomLogs(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, logs, s.logger)
}

func (s *Server) handleDeleteSymptomLog(w http.ResponseWriter, r *http.Request) {
	if err := s.cycleService.DeleteSymptomLog(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
