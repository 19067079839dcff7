package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	domainerrors "github.com/dayplanapp/dayplan-server/internal/errors"
)

func TestTaskService_TodoFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "flow@example.com")

	created, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{
		Kind:    "todo",
		Label:   "Buy groceries",
		DueDate: "2026-09-01",
	})
	require.NoError(t, err)
	assert.False(t, created.Completed)

	listed, err := env.tasks.ListForDate(ctx, user.ID, "todo", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Buy groceries", listed[0].Label)

	toggled, err := env.tasks.ToggleCompleted(ctx, user.ID, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	// Toggle is a flip, not a set.
	toggled, err = env.tasks.ToggleCompleted(ctx, user.ID, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestTaskService_SubtaskRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "subs@example.com")

	parent, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "work", Label: "Ship release"})
	require.NoError(t, err)

	sub, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{
		Kind:     "work",
		Label:    "Write changelog",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)

	// One level only.
	_, err = env.tasks.Create(ctx, user.ID, CreateTaskRequest{
		Kind:     "work",
		Label:    "Too deep",
		ParentID: &sub.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Kind must match the parent.
	_, err = env.tasks.Create(ctx, user.ID, CreateTaskRequest{
		Kind:     "leisure",
		Label:    "Wrong list",
		ParentID: &parent.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// A stranger's task cannot be a parent.
	other := env.makeUser(t, "other@example.com")
	_, err = env.tasks.Create(ctx, other.ID, CreateTaskRequest{
		Kind:     "work",
		Label:    "Not yours",
		ParentID: &parent.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTaskService_CompletionDoesNotCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "cascade@example.com")

	parent, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "todo", Label: "Parent"})
	require.NoError(t, err)
	sub, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "todo", Label: "Child", ParentID: &parent.ID})
	require.NoError(t, err)

	_, err = env.tasks.ToggleCompleted(ctx, user.ID, parent.ID)
	require.NoError(t, err)

	got, err := env.tasks.Get(ctx, user.ID, sub.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestTaskService_DeleteTopLevelRemovesSubtasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "deltree@example.com")

	parent, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "todo", Label: "Parent"})
	require.NoError(t, err)
	sub, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "todo", Label: "Child", ParentID: &parent.ID})
	require.NoError(t, err)

	require.NoError(t, env.tasks.Delete(ctx, user.ID, parent.ID))

	_, err = env.tasks.Get(ctx, user.ID, sub.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTaskService_DeleteSubtaskKeepsParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "delsub@example.com")

	parent, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "todo", Label: "Parent"})
	require.NoError(t, err)
	sub, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "todo", Label: "Child", ParentID: &parent.ID})
	require.NoError(t, err)

	require.NoError(t, env.tasks.Delete(ctx, user.ID, sub.ID))

	_, err = env.tasks.Get(ctx, user.ID, parent.ID)
	assert.NoError(t, err)
}

func TestTaskService_ForeignTaskReadsAsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.makeUser(t, "owner@example.com")
	stranger := env.makeUser(t, "stranger@example.com")

	task, err := env.tasks.Create(ctx, owner.ID, CreateTaskRequest{Kind: "fitness", Label: "Morning run"})
	require.NoError(t, err)

	_, err = env.tasks.Get(ctx, stranger.ID, task.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = env.tasks.ToggleCompleted(ctx, stranger.ID, task.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	err = env.tasks.Delete(ctx, stranger.ID, task.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTaskService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "valid@example.com")

	_, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "chores", Label: "Nope"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "todo", Label: "Bad date", DueDate: "01-09-2026"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "todo", Label: "Bad time", DueDate: "2026-09-01", DueTime: "9am"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "todo"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestTaskService_ListForDateAttachesSubtasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "attach@example.com")

	parent, err := env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "selfdev", Label: "Study Go", DueDate: "2026-09-02"})
	require.NoError(t, err)
	for _, label := range []string{"Read chapter", "Do exercises"} {
		_, err = env.tasks.Create(ctx, user.ID, CreateTaskRequest{Kind: "selfdev", Label: label, ParentID: &parent.ID})
		require.NoError(t, err)
	}

	listed, err := env.tasks.ListForDate(ctx, user.ID, "selfdev", "2026-09-02")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0].Subtasks, 2)
	for _, sub := range listed[0].Subtasks {
		assert.Equal(t, domain.TaskKindSelfDev, sub.Kind)
	}
}
