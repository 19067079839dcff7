package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/dayplanapp/dayplan-server/internal/errors"
)

func TestChecklistService_ShareIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "share@example.com")

	cat, err := env.checklist.CreateCategory(ctx, user.ID, CreateCategoryRequest{Name: "Packing"})
	require.NoError(t, err)

	first, err := env.checklist.ShareCategory(ctx, user.ID, cat.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(first.ShareToken), 22)

	second, err := env.checklist.ShareCategory(ctx, user.ID, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ShareToken, second.ShareToken)
}

func TestChecklistService_ResolveShared(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "resolve@example.com")

	cat, err := env.checklist.CreateCategory(ctx, user.ID, CreateCategoryRequest{Name: "Hospital bag"})
	require.NoError(t, err)
	_, err = env.checklist.CreateItem(ctx, user.ID, cat.ID, CreateItemRequest{Text: "Blanket", SortOrder: 2})
	require.NoError(t, err)
	_, err = env.checklist.CreateItem(ctx, user.ID, cat.ID, CreateItemRequest{Text: "Documents", SortOrder: 1})
	require.NoError(t, err)

	share, err := env.checklist.ShareCategory(ctx, user.ID, cat.ID)
	require.NoError(t, err)

	shared, err := env.checklist.ResolveShared(ctx, share.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, "Hospital bag", shared.CategoryName)
	require.Len(t, shared.Items, 2)
	assert.Equal(t, "Documents", shared.Items[0].Text)

	_, err = env.checklist.ResolveShared(ctx, "not-a-real-token-at-all")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = env.checklist.ResolveShared(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestChecklistService_RevokeInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "revoke@example.com")

	cat, err := env.checklist.CreateCategory(ctx, user.ID, CreateCategoryRequest{Name: "Guests"})
	require.NoError(t, err)

	share, err := env.checklist.ShareCategory(ctx, user.ID, cat.ID)
	require.NoError(t, err)
	require.NoError(t, env.checklist.RevokeShare(ctx, user.ID, cat.ID))

	_, err = env.checklist.ResolveShared(ctx, share.ShareToken)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Re-sharing issues a fresh token; the revoked one stays dead.
	reshared, err := env.checklist.ShareCategory(ctx, user.ID, cat.ID)
	require.NoError(t, err)
	assert.NotEqual(t, share.ShareToken, reshared.ShareToken)
}

func TestChecklistService_DeleteLastCategoryRefused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "lastcat@example.com")

	only, err := env.checklist.CreateCategory(ctx, user.ID, CreateCategoryRequest{Name: "Only one"})
	require.NoError(t, err)

	err = env.checklist.DeleteCategory(ctx, user.ID, only.ID)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	_, err = env.checklist.CreateCategory(ctx, user.ID, CreateCategoryRequest{Name: "Second"})
	require.NoError(t, err)

	assert.NoError(t, env.checklist.DeleteCategory(ctx, user.ID, only.ID))
}

func TestChecklistService_DeleteCategoryRemovesItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "catitems@example.com")

	keep, err := env.checklist.CreateCategory(ctx, user.ID, CreateCategoryRequest{Name: "Keep"})
	require.NoError(t, err)
	doomed, err := env.checklist.CreateCategory(ctx, user.ID, CreateCategoryRequest{Name: "Doomed"})
	require.NoError(t, err)

	item, err := env.checklist.CreateItem(ctx, user.ID, doomed.ID, CreateItemRequest{Text: "Goes with it"})
	require.NoError(t, err)

	require.NoError(t, env.checklist.DeleteCategory(ctx, user.ID, doomed.ID))

	_, err = env.checklist.UpdateItem(ctx, user.ID, item.ID, UpdateItemRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// The surviving category is untouched.
	_, err = env.checklist.ListItems(ctx, user.ID, keep.ID)
	assert.NoError(t, err)
}

func TestChecklistService_ForeignCategoryHidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.makeUser(t, "catowner@example.com")
	stranger := env.makeUser(t, "catstranger@example.com")

	cat, err := env.checklist.CreateCategory(ctx, owner.ID, CreateCategoryRequest{Name: "Private"})
	require.NoError(t, err)

	_, err = env.checklist.ShareCategory(ctx, stranger.ID, cat.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = env.checklist.ListItems(ctx, stranger.ID, cat.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	err = env.checklist.DeleteCategory(ctx, stranger.ID, cat.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestChecklistService_ItemFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "items@example.com")

	cat, err := env.checklist.CreateCategory(ctx, user.ID, CreateCategoryRequest{Name: "Chores"})
	require.NoError(t, err)

	item, err := env.checklist.CreateItem(ctx, user.ID, cat.ID, CreateItemRequest{Text: "Vacuum"})
	require.NoError(t, err)
	assert.False(t, item.Completed)

	done := true
	updated, err := env.checklist.UpdateItem(ctx, user.ID, item.ID, UpdateItemRequest{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	require.NoError(t, env.checklist.DeleteItem(ctx, user.ID, item.ID))

	items, err := env.checklist.ListItems(ctx, user.ID, cat.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
