package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dayplanapp/dayplan-server/internal/http/response"
	"github.com/dayplanapp/dayplan-server/internal/service"
)

func (s *Server) handleInvitePeer(w http.ResponseWriter, r *http.Request) {
	var req service.InvitePeerRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	peer, err := s.socialService.InvitePeer(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, peer, s.logger)
}

func (s *Server) handleListPeers(w http.ResponseWriter, r *http.Request) {
	peers, err := s.socialService.ListPeers(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, peers, s.logger)
}

func (s *Server) handleAcceptPeer(w http.ResponseWriter, r *http.Request) {
	peer, err := s.socialService.AcceptPeer(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, peer, s.logger)
}

func (s *Server) handleRemovePeer(w http.ResponseWriter, r *http.Request) {
	if err := s.socialService.RemovePeer(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleListSyncPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.socialService.ListSyncPreferences(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, prefs, s.logger)
}

func (s *Server) handleSetSyncPreference(w http.ResponseWriter, r *http.Request) {
	var req service.SetSyncPreferenceRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	pref, err := s.socialService.SetSyncPreference(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, pref, s.logger)
}

func (s *Server) handleVisibleFitnessActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := s.socialService.VisibleFitnessActivities(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, activities, s.logger)
}

func (s *Server) handleJoinActivity(w http.ResponseWriter, r *http.Request) {
	var req service.JoinActivityRequest
	// The body is optional: a bare join is the common case.
	if r.ContentLength > 0 {
		if err := s.decode(r, &req); err != nil {
			response.BadRequest(w, "Invalid request body", s.logger)
			return
		}
	}

	participant, err := s.socialService.JoinActivity(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, participant, s.logger)
}

func (s *Server) handleLeaveActivity(w http.ResponseWriter, r *http.Request) {
	if err := s.socialService.LeaveActivity(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleCreateQuickAdd(w http.ResponseWriter, r *http.Request) {
	var req service.CreateQuickAddRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	btn, err := s.quickAddService.Create(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, btn, s.logger)
}

func (s *Server) handleListQuickAdd(w http.ResponseWriter, r *http.Request) {
	btns, err := s.quickAddService.List(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, btns, s.logger)
}

func (s *Server) handleUpdateQuickAdd(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateQuickAddRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	btn, err := s.quickAddService.Update(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, btn, s.logger)
}

func (s *Server) handleDeleteQuickAdd(w http.ResponseWriter, r *http.Request) {
	if err := s.quickAddService.Delete(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
