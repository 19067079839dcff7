package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

// taskColumns is the ordered list of columns selected in task queries.
// Must match the scan order in scanTask.
const taskColumns = `id, created_at, updated_at, owner_id, kind, label,
	due_date, due_time, completed, parent_id`

// scanTask scans a sql.Row (or sql.Rows via its Scan method) into a domain.TaskItem.
func scanTask(scanner interface{ Scan(dest ...any) error }) (*domain.TaskItem, error) {
	var t domain.TaskItem

	var (
		createdAt string
		updatedAt string
		kind      string
		dueDate   sql.NullString
		dueTime   sql.NullString
		completed int
		parentID  sql.NullString
	)

	err := scanner.Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
		&t.OwnerID,
		&kind,
		&t.Label,
		&dueDate,
		&dueTime,
		&completed,
		&parentID,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	t.Kind = domain.TaskKind(kind)
	if dueDate.Valid {
		t.DueDate = dueDate.String
	}
	if dueTime.Valid {
		t.DueTime = dueTime.String
	}
	t.Completed = completed != 0
	if parentID.Valid {
		t.ParentID = &parentID.String
	}

	return &t, nil
}

// CreateTask inserts a new task item.
// Returns store.ErrAlreadyExists if the ID already exists.
func (s *Store) CreateTask(ctx context.Context, task *domain.TaskItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO task_items (
			id, created_at, updated_at, owner_id, kind, label,
			due_date, due_time, completed, parent_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
		task.OwnerID,
		string(task.Kind),
		task.Label,
		nullString(task.DueDate),
		nullString(task.DueTime),
		boolToInt(task.Completed),
		nullableString(task.ParentID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTask retrieves a task item by ID.
// Returns store.ErrNotFound if the task does not exist.
func (s *Store) GetTask(ctx context.Context, id string) (*domain.TaskItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM task_items WHERE id = ?`, id)

	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTask performs a full row update on an existing task item.
// Returns store.ErrNotFound if the task does not exist.
func (s *Store) UpdateTask(ctx context.Context, task *domain.TaskItem) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE task_items SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			kind = ?,
			label = ?,
			due_date = ?,
			due_time = ?,
			completed = ?,
			parent_id = ?
		WHERE id = ?`,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
		task.OwnerID,
		string(task.Kind),
		task.Label,
		nullString(task.DueDate),
		nullString(task.DueTime),
		boolToInt(task.Completed),
		nullableString(task.ParentID),
		task.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteTaskTree deletes a top-level task together with all its subtasks.
// The parent delete cascades to children via the parent_id foreign key, so
// the whole tree goes in one atomic statement.
// Returns store.ErrNotFound if the task does not exist.
func (s *Store) DeleteTaskTree(ctx context.Context, id string) error {
	return s.DeleteTask(ctx, id)
}

// DeleteTask performs a hard delete of a single task item by ID.
// Returns store.ErrNotFound if the task does not exist.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM task_items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListTasksForDate returns top-level tasks of one kind due on an exact date,
// ordered by creation time.
func (s *Store) ListTasksForDate(ctx context.Context, ownerID string, kind domain.TaskKind, date string) ([]*domain.TaskItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM task_items
		WHERE owner_id = ? AND kind = ? AND due_date = ? AND parent_id IS NULL
		ORDER BY created_at ASC`,
		ownerID, string(kind), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

// ListTasksByKind returns all top-level tasks of one kind for an owner,
// ordered by creation time.
func (s *Store) ListTasksByKind(ctx context.Context, ownerID string, kind domain.TaskKind) ([]*domain.TaskItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM task_items
		WHERE owner_id = ? AND kind = ? AND parent_id IS NULL
		ORDER BY created_at ASC`,
		ownerID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

// ListSubtasks returns the direct children of a task, ordered by creation time.
func (s *Store) ListSubtasks(ctx context.Context, parentID string) ([]*domain.TaskItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM task_items
		WHERE parent_id = ?
		ORDER BY created_at ASC`,
		parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]*domain.TaskItem, error) {
	var tasks []*domain.TaskItem
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
