package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dayplanapp/dayplan-server/internal/http/response"
	"github.com/dayplanapp/dayplan-server/internal/service"
)

func (s *Server) handleGetWeddingInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.planningService.GetWeddingInfo(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, info, s.logger)
}

func (s *Server) handleSaveWeddingInfo(w http.ResponseWriter, r *http.Request) {
	var req service.SaveWeddingInfoRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	info, err := s.planningService.SaveWeddingInfo(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, info, s.logger)
}

func (s *Server) handleGetPregnancyInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.planningService.GetPregnancyInfo(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, info, s.logger)
}

func (s *Server) handleSavePregnancyInfo(w http.ResponseWriter, r *http.Request) {
	var req service.SavePregnancyInfoRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	info, err := s.planningService.SavePregnancyInfo(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, info, s.logger)
}

func (s *Server) handlePregnancyProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.planningService.PregnancyProgress(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, progress, s.logger)
}

func (s *Server) handleGetBabyShowerInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.planningService.GetBabyShowerInfo(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, info, s.logger)
}

func (s *Server) handleSaveBabyShowerInfo(w http.ResponseWriter, r *http.Request) {
	var req service.SaveBabyShowerInfoRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	info, err := s.planningService.SaveBabyShowerInfo(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, info, s.logger)
}

func (s *Server) handleCreateGuest(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGuestRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	guest, err := s.planningService.CreateGuest(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, guest, s.logger)
}

// handleListGuests lists guests for the event named by ?event=.
func (s *Server) handleListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := s.planningService.ListGuests(r.Context(), getUserID(r.Context()), r.URL.Query().Get("event"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, guests, s.logger)
}

func (s *Server) handleUpdateGuest(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateGuestRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	guest, err := s.planningService.UpdateGuest(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, guest, s.logger)
}

func (s *Server) handleDeleteGuest(w http.ResponseWriter, r *http.Request) {
	if err := s.planningService.DeleteGuest(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	var req service.CreateVendorRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	vendor, err := s.planningService.CreateVendor(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, vendor, s.logger)
}

func (s *Server) handleListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.planningService.ListVendors(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, vendors, s.logger)
}

func (s *Server) handleUpdateVendor(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateVendorRequest
	if err := s.decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	vendor, err := s.planningService.UpdateVendor(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, vendor, s.logger)
}

func (s *Server) handleDeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := s.planningService.DeleteVendor(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
