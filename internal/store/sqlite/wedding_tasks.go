package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

const weddingTaskColumns = `id, created_at, updated_at, owner_id, title, date,
	time, vendor, priority, notes, completed`

func scanWeddingTask(scanner interface{ Scan(dest ...any) error }) (*domain.WeddingTask, error) {
	var t domain.WeddingTask

	var (
		createdAt string
		updatedAt string
		timeOfDay sql.NullString
		vendor    sql.NullString
		priority  sql.NullString
		notes     sql.NullString
		completed int
	)

	err := scanner.Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
		&t.OwnerID,
		&t.Title,
		&t.Date,
		&timeOfDay,
		&vendor,
		&priority,
		&notes,
		&completed,
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

	if timeOfDay.Valid {
		t.Time = timeOfDay.String
	}
	if vendor.Valid {
		t.Vendor = vendor.String
	}
	if priority.Valid {
		t.Priority = domain.WeddingTaskPriority(priority.String)
	}
	if notes.Valid {
		t.Notes = notes.String
	}
	t.Completed = completed != 0

	return &t, nil
}

// CreateWeddingTask inserts a new wedding task.
func (s *Store) CreateWeddingTask(ctx context.Context, task *domain.WeddingTask) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wedding_tasks (
			id, created_at, updated_at, owner_id, title, date,
			time, vendor, priority, notes, completed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
		task.OwnerID,
		task.Title,
		task.Date,
		nullString(task.Time),
		nullString(task.Vendor),
		nullString(string(task.Priority)),
		nullString(task.Notes),
		boolToInt(task.Completed),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetWeddingTask retrieves a wedding task by ID.
func (s *Store) GetWeddingTask(ctx context.Context, id string) (*domain.WeddingTask, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+weddingTaskColumns+` FROM wedding_tasks WHERE id = ?`, id)

	t, err := scanWeddingTask(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateWeddingTask performs a full row update.
func (s *Store) UpdateWeddingTask(ctx context.Context, task *domain.WeddingTask) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE wedding_tasks SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			title = ?,
			date = ?,
			time = ?,
			vendor = ?,
			priority = ?,
			notes = ?,
			completed = ?
		WHERE id = ?`,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
		task.OwnerID,
		task.Title,
		task.Date,
		nullString(task.Time),
		nullString(task.Vendor),
		nullString(string(task.Priority)),
		nullString(task.Notes),
		boolToInt(task.Completed),
		task.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeleteWeddingTask performs a hard delete by ID.
func (s *Store) DeleteWeddingTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM wedding_tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListWeddingTasks returns all wedding tasks for an owner, ordered by date.
func (s *Store) ListWeddingTasks(ctx context.Context, ownerID string) ([]*domain.WeddingTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+weddingTaskColumns+` FROM wedding_tasks
		WHERE owner_id = ? ORDER BY date ASC, created_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWeddingTasks(rows)
}

// ListWeddingTasksForDate returns an owner's wedding tasks on an exact date.
func (s *Store) ListWeddingTasksForDate(ctx context.Context, ownerID, date string) ([]*domain.WeddingTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+weddingTaskColumns+` FROM wedding_tasks
		WHERE owner_id = ? AND date = ? ORDER BY created_at ASC`, ownerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWeddingTasks(rows)
}

func collectWeddingTasks(rows *sql.Rows) ([]*domain.WeddingTask, error) {
	var tasks []*domain.WeddingTask
	for rows.Next() {
		t, err := scanWeddingTask(rows)
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
