package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

func makeCategory(t *testing.T, s *Store, id, ownerID, name string) *domain.ChecklistCategory {
	t.Helper()
	cat := &domain.ChecklistCategory{OwnerID: ownerID, Name: name}
	cat.ID = id
	cat.InitTimestamps()
	if err := s.CreateChecklistCategory(context.Background(), cat); err != nil {
		t.Fatalf("CreateChecklistCategory(%s): %v", id, err)
	}
	return cat
}

func TestEnsureShareToken_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")
	makeCategory(t, s, "cat-1", "user-1", "Hospital Bag")

	first, err := s.EnsureShareToken(ctx, "cat-1", "tokenA")
	if err != nil {
		t.Fatalf("EnsureShareToken: %v", err)
	}
	if first != "tokenA" {
		t.Fatalf("first token: got %q, want tokenA", first)
	}

	// A second call with a fresh candidate must return the original token.
	second, err := s.EnsureShareToken(ctx, "cat-1", "tokenB")
	if err != nil {
		t.Fatalf("EnsureShareToken (second): %v", err)
	}
	if second != "tokenA" {
		t.Fatalf("second token: got %q, want tokenA", second)
	}

	cat, err := s.GetChecklistCategory(ctx, "cat-1")
	if err != nil {
		t.Fatalf("GetChecklistCategory: %v", err)
	}
	if !cat.IsShared || !cat.HasShareToken() {
		t.Error("category should be marked shared with a token")
	}
}

func TestGetCategoryByShareToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")
	makeCategory(t, s, "cat-1", "user-1", "Hospital Bag")

	if _, err := s.EnsureShareToken(ctx, "cat-1", "tok"); err != nil {
		t.Fatalf("EnsureShareToken: %v", err)
	}

	got, err := s.GetCategoryByShareToken(ctx, "tok")
	if err != nil {
		t.Fatalf("GetCategoryByShareToken: %v", err)
	}
	if got.ID != "cat-1" {
		t.Errorf("ID: got %q", got.ID)
	}

	if _, err := s.GetCategoryByShareToken(ctx, "bogus"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown token, got %v", err)
	}
}

func TestRevokeShareToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")
	makeCategory(t, s, "cat-1", "user-1", "Hospital Bag")

	if _, err := s.EnsureShareToken(ctx, "cat-1", "tok"); err != nil {
		t.Fatalf("EnsureShareToken: %v", err)
	}
	if err := s.RevokeShareToken(ctx, "cat-1"); err != nil {
		t.Fatalf("RevokeShareToken: %v", err)
	}

	if _, err := s.GetCategoryByShareToken(ctx, "tok"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("token should be dead after revoke, got %v", err)
	}

	// Re-sharing issues a new token instead of resurrecting the old one.
	again, err := s.EnsureShareToken(ctx, "cat-1", "tok2")
	if err != nil {
		t.Fatalf("EnsureShareToken after revoke: %v", err)
	}
	if again != "tok2" {
		t.Errorf("got %q, want tok2", again)
	}
}

func TestDeleteChecklistCategory_RefusesLast(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")
	makeCategory(t, s, "cat-1", "user-1", "Only One")

	err := s.DeleteChecklistCategory(ctx, "cat-1")
	if !errors.Is(err, store.ErrLastCategory) {
		t.Fatalf("expected ErrLastCategory, got %v", err)
	}

	// With a second category the delete goes through.
	makeCategory(t, s, "cat-2", "user-1", "Second")
	if err := s.DeleteChecklistCategory(ctx, "cat-1"); err != nil {
		t.Fatalf("DeleteChecklistCategory: %v", err)
	}
}

func TestDeleteChecklistCategory_CascadesItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")
	makeCategory(t, s, "cat-1", "user-1", "First")
	makeCategory(t, s, "cat-2", "user-1", "Second")

	item := &domain.ChecklistItem{CategoryID: "cat-1", Text: "Pack socks"}
	item.ID = "item-1"
	item.InitTimestamps()
	if err := s.CreateChecklistItem(ctx, item); err != nil {
		t.Fatalf("CreateChecklistItem: %v", err)
	}

	if err := s.DeleteChecklistCategory(ctx, "cat-1"); err != nil {
		t.Fatalf("DeleteChecklistCategory: %v", err)
	}
	if _, err := s.GetChecklistItem(ctx, "item-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("item survived the cascade: %v", err)
	}
}

func TestChecklistItemOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")
	makeCategory(t, s, "cat-1", "user-1", "Bag")

	for i, spec := range []struct {
		id    string
		order int
	}{
		{"item-b", 2},
		{"item-a", 1},
		{"item-c", 3},
	} {
		item := &domain.ChecklistItem{CategoryID: "cat-1", Text: spec.id, SortOrder: spec.order}
		item.ID = spec.id
		item.InitTimestamps()
		if err := s.CreateChecklistItem(ctx, item); err != nil {
			t.Fatalf("CreateChecklistItem %d: %v", i, err)
		}
	}

	items, err := s.ListChecklistItems(ctx, "cat-1")
	if err != nil {
		t.Fatalf("ListChecklistItems: %v", err)
	}
	want := []string{"item-a", "item-b", "item-c"}
	for i, w := range want {
		if items[i].ID != w {
			t.Errorf("position %d: got %q, want %q", i, items[i].ID, w)
		}
	}
}
