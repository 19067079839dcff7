package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dayplanapp/dayplan-server/internal/http/response"
	"github.com/dayplanapp/dayplan-server/internal/service"
)

func (s *Server) handleCreateChecklistCategory(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	cat, err := s.checklistService.CreateCategory(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, cat, s.logger)
}

func (s *Server) handleListChecklistCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.checklistService.ListCategories(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, cats, s.logger)
}

func (s *Server) handleRenameChecklistCategory(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	cat, err := s.checklistService.RenameCategory(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, cat, s.logger)
}

func (s *Server) handleDeleteChecklistCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.checklistService.DeleteCategory(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleShareChecklistCategory(w http.ResponseWriter, r *http.Request) {
	share, err := s.checklistService.ShareCategory(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, share, s.logger)
}

func (s *Server) handleRevokeChecklistShare(w http.ResponseWriter, r *http.Request) {
	if err := s.checklistService.RevokeShare(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleResolveSharedChecklist is the public, unauthenticated share path.
func (s *Server) handleResolveSharedChecklist(w http.ResponseWriter, r *http.Request) {
	shared, err := s.checklistService.ResolveShared(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, shared, s.logger)
}

func (s *Server) handleCreateChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req service.CreateItemRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	item, err := s.checklistService.CreateItem(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, item, s.logger)
}

func (s *Server) handleListChecklistItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.checklistService.ListItems(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, items, s.logger)
}

func (s *Server) handleUpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateItemRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	item, err := s.checklistService.UpdateItem(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, item, s.logger)
}

func (s *Server) handleDeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	if err := s.checklistService.DeleteItem(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
