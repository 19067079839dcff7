package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

func makeTask(id, ownerID string, kind domain.TaskKind, label, dueDate string, parentID *string) *domain.TaskItem {
	task := &domain.TaskItem{
		OwnerID:  ownerID,
		Kind:     kind,
		Label:    label,
		DueDate:  dueDate,
		ParentID: parentID,
	}
	task.ID = id
	task.InitTimestamps()
	return task
}

func TestCreateAndGetTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")

	task := makeTask("task-1", "user-1", domain.TaskKindTodo, "Buy milk", "2025-03-01", nil)
	task.DueTime = "09:30"
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got, err := s.GetTask(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Label != "Buy milk" {
		t.Errorf("Label: got %q", got.Label)
	}
	if got.Kind != domain.TaskKindTodo {
		t.Errorf("Kind: got %q", got.Kind)
	}
	if got.DueDate != "2025-03-01" {
		t.Errorf("DueDate: got %q", got.DueDate)
	}
	if got.DueTime != "09:30" {
		t.Errorf("DueTime: got %q", got.DueTime)
	}
	if got.ParentID != nil {
		t.Errorf("ParentID: got %v, want nil", *got.ParentID)
	}
	if got.Completed {
		t.Error("Completed: new task should be incomplete")
	}
}

func TestListTasksForDate_ScopedByKindAndDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")
	makeTestUser(t, s, "user-2")

	seed := []*domain.TaskItem{
		makeTask("t1", "user-1", domain.TaskKindTodo, "match", "2025-03-01", nil),
		makeTask("t2", "user-1", domain.TaskKindTodo, "other day", "2025-03-02", nil),
		makeTask("t3", "user-1", domain.TaskKindWork, "other kind", "2025-03-01", nil),
		makeTask("t4", "user-2", domain.TaskKindTodo, "other owner", "2025-03-01", nil),
	}
	for _, task := range seed {
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask(%s): %v", task.ID, err)
		}
	}

	// A subtask due the same day must not appear in the top-level list.
	parent := "t1"
	sub := makeTask("t5", "user-1", domain.TaskKindTodo, "subtask", "2025-03-01", &parent)
	if err := s.CreateTask(ctx, sub); err != nil {
		t.Fatalf("CreateTask(sub): %v", err)
	}

	got, err := s.ListTasksForDate(ctx, "user-1", domain.TaskKindTodo, "2025-03-01")
	if err != nil {
		t.Fatalf("ListTasksForDate: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("expected exactly t1, got %d tasks", len(got))
	}
}

func TestListSubtasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")

	if err := s.CreateTask(ctx, makeTask("parent", "user-1", domain.TaskKindWork, "parent", "2025-03-01", nil)); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	parent := "parent"
	for _, id := range []string{"sub-1", "sub-2"} {
		if err := s.CreateTask(ctx, makeTask(id, "user-1", domain.TaskKindWork, id, "", &parent)); err != nil {
			t.Fatalf("CreateTask(%s): %v", id, err)
		}
	}

	subs, err := s.ListSubtasks(ctx, "parent")
	if err != nil {
		t.Fatalf("ListSubtasks: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d subtasks, want 2", len(subs))
	}
}

func TestDeleteTaskTree_CascadesToSubtasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")

	if err := s.CreateTask(ctx, makeTask("parent", "user-1", domain.TaskKindTodo, "parent", "2025-03-01", nil)); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	parent := "parent"
	if err := s.CreateTask(ctx, makeTask("sub-1", "user-1", domain.TaskKindTodo, "sub", "", &parent)); err != nil {
		t.Fatalf("CreateTask(sub): %v", err)
	}

	if err := s.DeleteTaskTree(ctx, "parent"); err != nil {
		t.Fatalf("DeleteTaskTree: %v", err)
	}

	if _, err := s.GetTask(ctx, "parent"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("parent survived: %v", err)
	}
	if _, err := s.GetTask(ctx, "sub-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("subtask survived the cascade: %v", err)
	}
}

func TestDeleteSubtask_LeavesParent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")

	if err := s.CreateTask(ctx, makeTask("parent", "user-1", domain.TaskKindTodo, "parent", "2025-03-01", nil)); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	parent := "parent"
	if err := s.CreateTask(ctx, makeTask("sub-1", "user-1", domain.TaskKindTodo, "sub", "", &parent)); err != nil {
		t.Fatalf("CreateTask(sub): %v", err)
	}

	if err := s.DeleteTask(ctx, "sub-1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := s.GetTask(ctx, "parent"); err != nil {
		t.Errorf("parent should survive subtask delete: %v", err)
	}
}

func TestUpdateTaskToggleCompleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")

	task := makeTask("task-1", "user-1", domain.TaskKindFitness, "Run 5k", "2025-03-01", nil)
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	task.ToggleCompleted()
	if err := s.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	got, err := s.GetTask(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if !got.Completed {
		t.Error("expected task completed after toggle")
	}
}
