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

// TaskService manages task items of every kind, including the one-level
// parent/subtask hierarchy.
type TaskService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(st store.Store, logger *slog.Logger) *TaskService {
	return &TaskService{store: st, logger: logger}
}

// CreateTaskRequest contains the data for a new task or subtask.
type CreateTaskRequest struct {
	Kind     string  `json:"kind" validate:"required"`
	Label    string  `json:"label" validate:"required,max=500"`
	DueDate  string  `json:"due_date,omitempty"`
	DueTime  string  `json:"due_time,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

// UpdateTaskRequest contains the editable fields of a task.
type UpdateTaskRequest struct {
	Label   *string `json:"label,omitempty"`
	DueDate *string `json:"due_date,omitempty"`
	DueTime *string `json:"due_time,omitempty"`
}

// TaskWithSubtasks pairs a top-level task with its children.
type TaskWithSubtasks struct {
	domain.TaskItem
	Subtasks []domain.TaskItem `json:"subtasks"`
}

// Create creates a task item. With a ParentID set it creates a subtask, which
// must share the parent's owner and kind; nesting below one level is refused.
func (s *TaskService) Create(ctx context.Context, ownerID string, req CreateTaskRequest) (*domain.TaskItem, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	kind, ok := domain.ParseTaskKind(req.Kind)
	if !ok {
		return nil, domainerrors.Validationf("unknown task kind %q", req.Kind)
	}
	if req.DueDate != "" && !domain.ValidDate(req.DueDate) {
		return nil, domainerrors.Validation("due_date must be YYYY-MM-DD")
	}
	if req.DueTime != "" && !domain.ValidTime(req.DueTime) {
		return nil, domainerrors.Validation("due_time must be HH:MM")
	}

	if req.ParentID != nil {
		parent, err := s.getOwned(ctx, ownerID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsTopLevel() {
			return nil, domainerrors.Validation("subtasks cannot be nested")
		}
		if parent.Kind != kind {
			return nil, domainerrors.Validation("subtask kind must match its parent")
		}
	}

	taskID, err := id.Generate("task")
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	task := &domain.TaskItem{
		OwnerID:  ownerID,
		Kind:     kind,
		Label:    req.Label,
		DueDate:  req.DueDate,
		DueTime:  req.DueTime,
		ParentID: req.ParentID,
	}
	task.ID = taskID
	task.InitTimestamps()

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Get loads a task the caller owns.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*domain.TaskItem, error) {
	return s.getOwned(ctx, ownerID, taskID)
}

// Update edits a task's label, due date, or due time.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, req UpdateTaskRequest) (*domain.TaskItem, error) {
	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		if *req.Label == "" {
			return nil, domainerrors.Validation("label cannot be empty")
		}
		task.Label = *req.Label
	}
	if req.DueDate != nil {
		if *req.DueDate != "" && !domain.ValidDate(*req.DueDate) {
			return nil, domainerrors.Validation("due_date must be YYYY-MM-DD")
		}
		task.DueDate = *req.DueDate
	}
	if req.DueTime != nil {
		if *req.DueTime != "" && !domain.ValidTime(*req.DueTime) {
			return nil, domainerrors.Validation("due_time must be HH:MM")
		}
		task.DueTime = *req.DueTime
	}
	task.Touch()

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// ToggleCompleted flips a task's completion flag. Completion never cascades
// between a parent and its subtasks.
func (s *TaskService) ToggleCompleted(ctx context.Context, ownerID, taskID string) (*domain.TaskItem, error) {
	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	task.ToggleCompleted()
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task. A top-level task takes all its subtasks with it; a
// subtask goes alone and leaves the parent untouched.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return err
	}

	if task.IsTopLevel() {
		if err := s.store.DeleteTaskTree(ctx, taskID); err != nil {
			return fmt.Errorf("delete task tree: %w", err)
		}
		return nil
	}
	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ListForDate returns an owner's top-level tasks of one kind due on an exact
// date, each with its subtasks attached.
func (s *TaskService) ListForDate(ctx context.Context, ownerID, kindStr, date string) ([]TaskWithSubtasks, error) {
	kind, ok := domain.ParseTaskKind(kindStr)
	if !ok {
		return nil, domainerrors.Validationf("unknown task kind %q", kindStr)
	}
	if !domain.ValidDate(date) {
		return nil, domainerrors.Validation("date must be YYYY-MM-DD")
	}

	tasks, err := s.store.ListTasksForDate(ctx, ownerID, kind, date)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return s.attachSubtasks(ctx, tasks)
}

// ListByKind returns all of an owner's top-level tasks of one kind, each with
// its subtasks attached.
func (s *TaskService) ListByKind(ctx context.Context, ownerID, kindStr string) ([]TaskWithSubtasks, error) {
	kind, ok := domain.ParseTaskKind(kindStr)
	if !ok {
		return nil, domainerrors.Validationf("unknown task kind %q", kindStr)
	}

	tasks, err := s.store.ListTasksByKind(ctx, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return s.attachSubtasks(ctx, tasks)
}

// ListSubtasks returns the children of a task the caller owns.
func (s *TaskService) ListSubtasks(ctx context.Context, ownerID, parentID string) ([]*domain.TaskItem, error) {
	if _, err := s.getOwned(ctx, ownerID, parentID); err != nil {
		return nil, err
	}
	subs, err := s.store.ListSubtasks(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	return subs, nil
}

func (s *TaskService) attachSubtasks(ctx context.Context, tasks []*domain.TaskItem) ([]TaskWithSubtasks, error) {
	result := make([]TaskWithSubtasks, 0, len(tasks))
	for _, task := range tasks {
		subs, err := s.store.ListSubtasks(ctx, task.ID)
		if err != nil {
			return nil, fmt.Errorf("list subtasks of %s: %w", task.ID, err)
		}
		entry := TaskWithSubtasks{TaskItem: *task, Subtasks: make([]domain.TaskItem, 0, len(subs))}
		for _, sub := range subs {
			entry.Subtasks = append(entry.Subtasks, *sub)
		}
		result = append(result, entry)
	}
	return result, nil
}

// getOwned loads a task and enforces ownership. A task owned by someone else
// reads as not found so the API never confirms foreign IDs.
func (s *TaskService) getOwned(ctx context.Context, ownerID, taskID string) (*domain.TaskItem, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("task not found")
		}
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, domainerrors.NotFound("task not found")
	}
	return task, nil
}
