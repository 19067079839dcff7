package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dayplanapp/dayplan-server/internal/http/response"
	"github.com/dayplanapp/dayplan-server/internal/service"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	task, err := s.taskService.Create(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, task, s.logger)
}

// handleListTasks lists top-level tasks of one kind, optionally scoped to a
// single date via ?date=YYYY-MM-DD.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	date := r.URL.Query().Get("date")
	userID := getUserID(r.Context())

	var (
		tasks []service.TaskWithSubtasks
		err   error
	)
	if date != "" {
		tasks, err = s.taskService.ListForDate(r.Context(), userID, kind, date)
	} else {
		tasks, err = s.taskService.ListByKind(r.Context(), userID, kind)
	}
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tasks, s.logger)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.taskService.Get(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, task, s.logger)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTaskRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	task, err := s.taskService.Update(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, task, s.logger)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.taskService.ToggleCompleted(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, task, s.logger)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.taskService.Delete(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleListSubtasks(w http.ResponseWriter, r *http.Request) {
	subs, err := s.taskService.ListSubtasks(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, subs, s.logger)
}

func (s *Server) handleGetDayView(w http.ResponseWriter, r *http.Request) {
	view, err := s.dayViewService.Build(r.Context(), getUserID(r.Context()), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, view, s.logger)
}
