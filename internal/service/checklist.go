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

// ChecklistService manages checklist categories, items, and share tokens.
// The share token is the whole authorization mechanism for the public read
// path: anyone holding it can read the category's name and items, nothing
// else.
type ChecklistService struct {
	store  store.Store
	logger *slog.Logger
}

// NewChecklistService creates a new checklist service.
func NewChecklistService(st store.Store, logger *slog.Logger) *ChecklistService {
	return &ChecklistService{store: st, logger: logger}
}

// CreateCategoryRequest contains the data for a new checklist category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CreateItemRequest contains the data for a new checklist item.
type CreateItemRequest struct {
	Text      string `json:"text" validate:"required,max=1000"`
	SortOrder int    `json:"sort_order,omitempty"`
}

// UpdateItemRequest contains the editable fields of a checklist item.
type UpdateItemRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// ShareResponse carries the token issued for a shared category.
type ShareResponse struct {
	ShareToken string `json:"share_token"`
}

// CreateCategory creates a new checklist category.
func (s *ChecklistService) CreateCategory(ctx context.Context, ownerID string, req CreateCategoryRequest) (*domain.ChecklistCategory, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	catID, err := id.Generate("checklist")
	if err != nil {
		return nil, fmt.Errorf("generate category ID: %w", err)
	}

	cat := &domain.ChecklistCategory{OwnerID: ownerID, Name: req.Name}
	cat.ID = catID
	cat.InitTimestamps()

	if err := s.store.CreateChecklistCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

// RenameCategory changes a category's name.
func (s *ChecklistService) RenameCategory(ctx context.Context, ownerID, categoryID, name string) (*domain.ChecklistCategory, error) {
	if name == "" {
		return nil, domainerrors.Validation("name cannot be empty")
	}

	cat, err := s.getOwnedCategory(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	cat.Name = name
	cat.Touch()
	if err := s.store.UpdateChecklistCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

// DeleteCategory removes a category and all its items. Deleting the owner's
// last category is refused so an account always keeps at least one.
func (s *ChecklistService) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	if _, err := s.getOwnedCategory(ctx, ownerID, categoryID); err != nil {
		return err
	}

	if err := s.store.DeleteChecklistCategory(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrLastCategory) {
			return domainerrors.Conflict("cannot delete your last checklist category")
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListCategories returns the owner's checklist categories.
func (s *ChecklistService) ListCategories(ctx context.Context, ownerID string) ([]*domain.ChecklistCategory, error) {
	cats, err := s.store.ListChecklistCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// ShareCategory issues a share token for a category, or returns the existing
// one. Calling it twice always yields the same token until the share is
// revoked.
func (s *ChecklistService) ShareCategory(ctx context.Context, ownerID, categoryID string) (*ShareResponse, error) {
	if _, err := s.getOwnedCategory(ctx, ownerID, categoryID); err != nil {
		return nil, err
	}

	candidate, err := id.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}

	// The store discards the candidate when a token already exists, so
	// concurrent callers converge on one value.
	token, err := s.store.EnsureShareToken(ctx, categoryID, candidate)
	if err != nil {
		return nil, fmt.Errorf("ensure share token: %w", err)
	}

	s.logger.Info("checklist category shared", "category_id", categoryID)

	return &ShareResponse{ShareToken: token}, nil
}

// RevokeShare invalidates a category's share token. A later ShareCategory
// issues a fresh token; the old one stays dead.
func (s *ChecklistService) RevokeShare(ctx context.Context, ownerID, categoryID string) error {
	if _, err := s.getOwnedCategory(ctx, ownerID, categoryID); err != nil {
		return err
	}
	if err := s.store.RevokeShareToken(ctx, categoryID); err != nil {
		return fmt.Errorf("revoke share token: %w", err)
	}
	return nil
}

// ResolveShared looks up a shared category by its token. This is the public,
// unauthenticated path: the result carries the category name and items only,
// never the owner's identity.
func (s *ChecklistService) ResolveShared(ctx context.Context, token string) (*domain.SharedChecklist, error) {
	if token == "" {
		return nil, domainerrors.NotFound("shared checklist not found")
	}

	cat, err := s.store.GetCategoryByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("shared checklist not found")
		}
		return nil, err
	}

	ptrs, err := s.store.ListChecklistItems(ctx, cat.ID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items := make([]domain.ChecklistItem, 0, len(ptrs))
	for _, item := range ptrs {
		items = append(items, *item)
	}

	return &domain.SharedChecklist{CategoryName: cat.Name, Items: items}, nil
}

// CreateItem adds an item to a category the caller owns.
func (s *ChecklistService) CreateItem(ctx context.Context, ownerID, categoryID string, req CreateItemRequest) (*domain.ChecklistItem, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if _, err := s.getOwnedCategory(ctx, ownerID, categoryID); err != nil {
		return nil, err
	}

	itemID, err := id.Generate("item")
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}

	item := &domain.ChecklistItem{
		CategoryID: categoryID,
		Text:       req.Text,
		SortOrder:  req.SortOrder,
	}
	item.ID = itemID
	item.InitTimestamps()

	if err := s.store.CreateChecklistItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// UpdateItem edits an item's text, completion, or sort order.
func (s *ChecklistService) UpdateItem(ctx context.Context, ownerID, itemID string, req UpdateItemRequest) (*domain.ChecklistItem, error) {
	item, err := s.getOwnedItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		if *req.Text == "" {
			return nil, domainerrors.Validation("text cannot be empty")
		}
		item.Text = *req.Text
	}
	if req.Completed != nil {
		item.Completed = *req.Completed
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	item.Touch()

	if err := s.store.UpdateChecklistItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item.
func (s *ChecklistService) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	if _, err := s.getOwnedItem(ctx, ownerID, itemID); err != nil {
		return err
	}
	if err := s.store.DeleteChecklistItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ListItems returns the items of a category the caller owns.
func (s *ChecklistService) ListItems(ctx context.Context, ownerID, categoryID string) ([]*domain.ChecklistItem, error) {
	if _, err := s.getOwnedCategory(ctx, ownerID, categoryID); err != nil {
		return nil, err
	}
	items, err := s.store.ListChecklistItems(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *ChecklistService) getOwnedCategory(ctx context.Context, ownerID, categoryID string) (*domain.ChecklistCategory, error) {
	cat, err := s.store.GetChecklistCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, err
	}
	if cat.OwnerID != ownerID {
		return nil, domainerrors.NotFound("category not found")
	}
	return cat, nil
}

// getOwnedItem resolves an item through its category so item ownership
// follows category ownership.
func (s *ChecklistService) getOwnedItem(ctx context.Context, ownerID, itemID string) (*domain.ChecklistItem, error) {
	item, err := s.store.GetChecklistItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("item not found")
		}
		return nil, err
	}
	if _, err := s.getOwnedCategory(ctx, ownerID, item.CategoryID); err != nil {
		return nil, domainerrors.NotFound("item not found")
	}
	return item, nil
}
