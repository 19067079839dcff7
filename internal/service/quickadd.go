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

// QuickAddService manages quick-add buttons, the per-user shortcuts that
// pre-fill task creation for one kind.
type QuickAddService struct {
	store  store.Store
	logger *slog.Logger
}

// NewQuickAddService creates a new quick-add service.
func NewQuickAddService(st store.Store, logger *slog.Logger) *QuickAddService {
	return &QuickAddService{store: st, logger: logger}
}

// CreateQuickAddRequest contains the data for a new button.
type CreateQuickAddRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Category  string `json:"category" validate:"required"`
	Icon      string `json:"icon,omitempty" validate:"max=100"`
	Color     string `json:"color,omitempty" validate:"max=50"`
	Priority  int    `json:"priority,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`
}

// UpdateQuickAddRequest contains the editable fields of a button.
type UpdateQuickAddRequest struct {
	Name      *string `json:"name,omitempty"`
	Category  *string `json:"category,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	Color     *string `json:"color,omitempty"`
	Priority  *int    `json:"priority,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// Create adds a quick-add button. New buttons are active.
func (s *QuickAddService) Create(ctx context.Context, ownerID string, req CreateQuickAddRequest) (*domain.QuickAddButton, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	kind, ok := domain.ParseTaskKind(req.Category)
	if !ok {
		return nil, domainerrors.Validationf("unknown task kind %q", req.Category)
	}

	btnID, err := id.Generate("quickadd")
	if err != nil {
		return nil, fmt.Errorf("generate button ID: %w", err)
	}

	btn := &domain.QuickAddButton{
		OwnerID:   ownerID,
		Name:      req.Name,
		Category:  kind,
		Icon:      req.Icon,
		Color:     req.Color,
		Priority:  req.Priority,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	btn.ID = btnID
	btn.InitTimestamps()

	if err := s.store.CreateQuickAddButton(ctx, btn); err != nil {
		return nil, fmt.Errorf("create button: %w", err)
	}
	return btn, nil
}

// Update edits a button.
func (s *QuickAddService) Update(ctx context.Context, ownerID, btnID string, req UpdateQuickAddRequest) (*domain.QuickAddButton, error) {
	btn, err := s.getOwned(ctx, ownerID, btnID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, domainerrors.Validation("name cannot be empty")
		}
		btn.Name = *req.Name
	}
	if req.Category != nil {
		kind, ok := domain.ParseTaskKind(*req.Category)
		if !ok {
			return nil, domainerrors.Validationf("unknown task kind %q", *req.Category)
		}
		btn.Category = kind
	}
	if req.Icon != nil {
		btn.Icon = *req.Icon
	}
	if req.Color != nil {
		btn.Color = *req.Color
	}
	if req.Priority != nil {
		btn.Priority = *req.Priority
	}
	if req.SortOrder != nil {
		btn.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		btn.IsActive = *req.IsActive
	}
	btn.Touch()

	if err := s.store.UpdateQuickAddButton(ctx, btn); err != nil {
		return nil, fmt.Errorf("update button: %w", err)
	}
	return btn, nil
}

// Delete removes a button.
func (s *QuickAddService) Delete(ctx context.Context, ownerID, btnID string) error {
	if _, err := s.getOwned(ctx, ownerID, btnID); err != nil {
		return err
	}
	if err := s.store.DeleteQuickAddButton(ctx, btnID); err != nil {
		return fmt.Errorf("delete button: %w", err)
	}
	return nil
}

// List returns the owner's buttons in sort order.
func (s *QuickAddService) List(ctx context.Context, ownerID string) ([]*domain.QuickAddButton, error) {
	btns, err := s.store.ListQuickAddButtons(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list buttons: %w", err)
	}
	return btns, nil
}

func (s *QuickAddService) getOwned(ctx context.Context, ownerID, btnID string) (*domain.QuickAddButton, error) {
	btn, err := s.store.GetQuickAddButton(ctx, btnID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("button not found")
		}
		return nil, err
	}
	if btn.OwnerID != ownerID {
		return nil, domainerrors.NotFound("button not found")
	}
	return btn, nil
}
