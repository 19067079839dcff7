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

// PlanningService manages the per-owner planning singletons (wedding,
// pregnancy, baby shower) plus guests and vendors. Saving a singleton that
// already exists overwrites it; there is no separate create path.
type PlanningService struct {
	store  store.Store
	logger *slog.Logger
}

// NewPlanningService creates a new planning service.
func NewPlanningService(st store.Store, logger *slog.Logger) *PlanningService {
	return &PlanningService{store: st, logger: logger}
}

// SaveWeddingInfoRequest contains the wedding planner fields.
type SaveWeddingInfoRequest struct {
	PartnerName string  `json:"partner_name,omitempty" validate:"max=200"`
	WeddingDate string  `json:"wedding_date,omitempty"`
	Venue       string  `json:"venue,omitempty" validate:"max=500"`
	Budget      float64 `json:"budget,omitempty" validate:"min=0"`
	GuestCount  int     `json:"guest_count,omitempty" validate:"min=0"`
	Notes       string  `json:"notes,omitempty" validate:"max=2000"`
}

// SavePregnancyInfoRequest contains the pregnancy planner fields.
type SavePregnancyInfoRequest struct {
	DueDate        string `json:"due_date" validate:"required"`
	ConceptionDate string `json:"conception_date,omitempty"`
	Notes          string `json:"notes,omitempty" validate:"max=2000"`
}

// SaveBabyShowerInfoRequest contains the baby shower planner fields.
type SaveBabyShowerInfoRequest struct {
	ShowerDate string  `json:"shower_date,omitempty"`
	Venue      string  `json:"venue,omitempty" validate:"max=500"`
	Theme      string  `json:"theme,omitempty" validate:"max=200"`
	Budget     float64 `json:"budget,omitempty" validate:"min=0"`
	GuestCount int     `json:"guest_count,omitempty" validate:"min=0"`
	Notes      string  `json:"notes,omitempty" validate:"max=2000"`
}

// CreateGuestRequest contains the data for a new guest.
type CreateGuestRequest struct {
	Event string `json:"event" validate:"required,oneof=wedding babyshower"`
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"max=50"`
	Notes string `json:"notes,omitempty" validate:"max=2000"`
}

// UpdateGuestRequest contains the editable fields of a guest.
type UpdateGuestRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// CreateVendorRequest contains the data for a new wedding vendor.
type CreateVendorRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Category string  `json:"category,omitempty" validate:"max=100"`
	Email    string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string  `json:"phone,omitempty" validate:"max=50"`
	Quote    float64 `json:"quote,omitempty" validate:"min=0"`
	Notes    string  `json:"notes,omitempty" validate:"max=2000"`
}

// UpdateVendorRequest contains the editable fields of a vendor.
type UpdateVendorRequest struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Status   *string  `json:"status,omitempty"`
	Quote    *float64 `json:"quote,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}

// GetWeddingInfo loads the owner's wedding planner record.
func (s *PlanningService) GetWeddingInfo(ctx context.Context, ownerID string) (*domain.WeddingInfo, error) {
	info, err := s.store.GetWeddingInfo(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("wedding info not found")
		}
		return nil, err
	}
	return info, nil
}

// SaveWeddingInfo creates or overwrites the owner's wedding planner record.
func (s *PlanningService) SaveWeddingInfo(ctx context.Context, ownerID string, req SaveWeddingInfoRequest) (*domain.WeddingInfo, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if req.WeddingDate != "" && !domain.ValidDate(req.WeddingDate) {
		return nil, domainerrors.Validation("wedding_date must be YYYY-MM-DD")
	}

	infoID, err := id.Generate("wedding")
	if err != nil {
		return nil, fmt.Errorf("generate info ID: %w", err)
	}

	info := &domain.WeddingInfo{
		OwnerID:     ownerID,
		PartnerName: req.PartnerName,
		WeddingDate: req.WeddingDate,
		Venue:       req.Venue,
		Budget:      req.Budget,
		GuestCount:  req.GuestCount,
		Notes:       req.Notes,
	}
	info.ID = infoID
	info.InitTimestamps()

	// The store keeps the original id and created_at when a record already
	// exists, so re-read after the upsert.
	if err := s.store.UpsertWeddingInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("save wedding info: %w", err)
	}
	return s.store.GetWeddingInfo(ctx, ownerID)
}

// GetPregnancyInfo loads the owner's pregnancy planner record.
func (s *PlanningService) GetPregnancyInfo(ctx context.Context, ownerID string) (*domain.PregnancyInfo, error) {
	info, err := s.store.GetPregnancyInfo(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("pregnancy info not found")
		}
		return nil, err
	}
	return info, nil
}

// SavePregnancyInfo creates or overwrites the owner's pregnancy planner record.
func (s *PlanningService) SavePregnancyInfo(ctx context.Context, ownerID string, req SavePregnancyInfoRequest) (*domain.PregnancyInfo, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if !domain.ValidDate(req.DueDate) {
		return nil, domainerrors.Validation("due_date must be YYYY-MM-DD")
	}
	if req.ConceptionDate != "" && !domain.ValidDate(req.ConceptionDate) {
		return nil, domainerrors.Validation("conception_date must be YYYY-MM-DD")
	}

	infoID, err := id.Generate("pregnancy")
	if err != nil {
		return nil, fmt.Errorf("generate info ID: %w", err)
	}

	info := &domain.PregnancyInfo{
		OwnerID:        ownerID,
		DueDate:        req.DueDate,
		ConceptionDate: req.ConceptionDate,
		Notes:          req.Notes,
	}
	info.ID = infoID
	info.InitTimestamps()

	if err := s.store.UpsertPregnancyInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("save pregnancy info: %w", err)
	}
	return s.store.GetPregnancyInfo(ctx, ownerID)
}

// PregnancyProgress derives the owner's current week and trimester from the
// stored due date. Recomputed on every call since it depends on today's date.
func (s *PlanningService) PregnancyProgress(ctx context.Context, ownerID string) (*domain.PregnancyProgressResult, error) {
	info, err := s.GetPregnancyInfo(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	progress, err := domain.PregnancyProgress(info.DueDate, now())
	if err != nil {
		return nil, domainerrors.Validation("stored due date is invalid").WithCause(err)
	}
	return &progress, nil
}

// GetBabyShowerInfo loads the owner's baby shower planner record.
func (s *PlanningService) GetBabyShowerInfo(ctx context.Context, ownerID string) (*domain.BabyShowerInfo, error) {
	info, err := s.store.GetBabyShowerInfo(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("baby shower info not found")
		}
		return nil, err
	}
	return info, nil
}

// SaveBabyShowerInfo creates or overwrites the owner's baby shower record.
func (s *PlanningService) SaveBabyShowerInfo(ctx context.Context, ownerID string, req SaveBabyShowerInfoRequest) (*domain.BabyShowerInfo, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if req.ShowerDate != "" && !domain.ValidDate(req.ShowerDate) {
		return nil, domainerrors.Validation("shower_date must be YYYY-MM-DD")
	}

	infoID, err := id.Generate("babyshower")
	if err != nil {
		return nil, fmt.Errorf("generate info ID: %w", err)
	}

	info := &domain.BabyShowerInfo{
		OwnerID:    ownerID,
		ShowerDate: req.ShowerDate,
		Venue:      req.Venue,
		Theme:      req.Theme,
		Budget:     req.Budget,
		GuestCount: req.GuestCount,
		Notes:      req.Notes,
	}
	info.ID = infoID
	info.InitTimestamps()

	if err := s.store.UpsertBabyShowerInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("save baby shower info: %w", err)
	}
	return s.store.GetBabyShowerInfo(ctx, ownerID)
}

// CreateGuest adds a guest to the wedding or baby shower list. New guests
// start with a pending RSVP.
func (s *PlanningService) CreateGuest(ctx context.Context, ownerID string, req CreateGuestRequest) (*domain.Guest, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	guestID, err := id.Generate("guest")
	if err != nil {
		return nil, fmt.Errorf("generate guest ID: %w", err)
	}

	guest := &domain.Guest{
		OwnerID: ownerID,
		Event:   domain.GuestEvent(req.Event),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Status:  domain.RSVPPending,
		Notes:   req.Notes,
	}
	guest.ID = guestID
	guest.InitTimestamps()

	if err := s.store.CreateGuest(ctx, guest); err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return guest, nil
}

// UpdateGuest edits a guest, including RSVP status transitions.
func (s *PlanningService) UpdateGuest(ctx context.Context, ownerID, guestID string, req UpdateGuestRequest) (*domain.Guest, error) {
	guest, err := s.getOwnedGuest(ctx, ownerID, guestID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, domainerrors.Validation("name cannot be empty")
		}
		guest.Name = *req.Name
	}
	if req.Email != nil {
		guest.Email = *req.Email
	}
	if req.Phone != nil {
		guest.Phone = *req.Phone
	}
	if req.Status != nil {
		status := domain.RSVPStatus(*req.Status)
		if !status.Valid() {
			return nil, domainerrors.Validationf("unknown RSVP status %q", *req.Status)
		}
		guest.Status = status
	}
	if req.Notes != nil {
		guest.Notes = *req.Notes
	}
	guest.Touch()

	if err := s.store.UpdateGuest(ctx, guest); err != nil {
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return guest, nil
}

// DeleteGuest removes a guest.
func (s *PlanningService) DeleteGuest(ctx context.Context, ownerID, guestID string) error {
	if _, err := s.getOwnedGuest(ctx, ownerID, guestID); err != nil {
		return err
	}
	if err := s.store.DeleteGuest(ctx, guestID); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

// ListGuests returns the owner's guests for one event.
func (s *PlanningService) ListGuests(ctx context.Context, ownerID, eventStr string) ([]*domain.Guest, error) {
	event := domain.GuestEvent(eventStr)
	if !event.Valid() {
		return nil, domainerrors.Validationf("unknown guest event %q", eventStr)
	}

	guests, err := s.store.ListGuests(ctx, ownerID, event)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

// CreateVendor adds a wedding vendor. New vendors start in the contacted
// state.
func (s *PlanningService) CreateVendor(ctx context.Context, ownerID string, req CreateVendorRequest) (*domain.Vendor, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	vendorID, err := id.Generate("vendor")
	if err != nil {
		return nil, fmt.Errorf("generate vendor ID: %w", err)
	}

	vendor := &domain.Vendor{
		OwnerID:  ownerID,
		Name:     req.Name,
		Category: req.Category,
		Email:    req.Email,
		Phone:    req.Phone,
		Status:   domain.VendorContacted,
		Quote:    req.Quote,
		Notes:    req.Notes,
	}
	vendor.ID = vendorID
	vendor.InitTimestamps()

	if err := s.store.CreateVendor(ctx, vendor); err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}
	return vendor, nil
}

// UpdateVendor edits a vendor, including status transitions.
func (s *PlanningService) UpdateVendor(ctx context.Context, ownerID, vendorID string, req UpdateVendorRequest) (*domain.Vendor, error) {
	vendor, err := s.getOwnedVendor(ctx, ownerID, vendorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, domainerrors.Validation("name cannot be empty")
		}
		vendor.Name = *req.Name
	}
	if req.Category != nil {
		vendor.Category = *req.Category
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}
	if req.Status != nil {
		status := domain.VendorStatus(*req.Status)
		if !status.Valid() {
			return nil, domainerrors.Validationf("unknown vendor status %q", *req.Status)
		}
		vendor.Status = status
	}
	if req.Quote != nil {
		if *req.Quote < 0 {
			return nil, domainerrors.Validation("quote cannot be negative")
		}
		vendor.Quote = *req.Quote
	}
	if req.Notes != nil {
		vendor.Notes = *req.Notes
	}
	vendor.Touch()

	if err := s.store.UpdateVendor(ctx, vendor); err != nil {
		return nil, fmt.Errorf("update vendor: %w", err)
	}
	return vendor, nil
}

// DeleteVendor removes a vendor.
func (s *PlanningService) DeleteVendor(ctx context.Context, ownerID, vendorID string) error {
	if _, err := s.getOwnedVendor(ctx, ownerID, vendorID); err != nil {
		return err
	}
	if err := s.store.DeleteVendor(ctx, vendorID); err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return nil
}

// ListVendors returns the owner's wedding vendors.
func (s *PlanningService) ListVendors(ctx context.Context, ownerID string) ([]*domain.Vendor, error) {
	vendors, err := s.store.ListVendors(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}

func (s *PlanningService) getOwnedGuest(ctx context.Context, ownerID, guestID string) (*domain.Guest, error) {
	guest, err := s.store.GetGuest(ctx, guestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("guest not found")
		}
		return nil, err
	}
	if guest.OwnerID != ownerID {
		return nil, domainerrors.NotFound("guest not found")
	}
	return guest, nil
}

func (s *PlanningService) getOwnedVendor(ctx context.Context, ownerID, vendorID string) (*domain.Vendor, error) {
	vendor, err := s.store.GetVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("vendor not found")
		}
		return nil, err
	}
	if vendor.OwnerID != ownerID {
		return nil, domainerrors.NotFound("vendor not found")
	}
	return vendor, nil
}
