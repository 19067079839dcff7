package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

const quickAddColumns = `id, created_at, updated_at, owner_id, name, category,
	icon, color, priority, sort_order, is_active`

func scanQuickAddButton(scanner interface{ Scan(dest ...any) error }) (*domain.QuickAddButton, error) {
	var b domain.QuickAddButton

	var (
		createdAt string
		updatedAt string
		category  string
		icon      sql.NullString
		color     sql.NullString
		isActive  int
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.OwnerID,
		&b.Name,
		&category,
		&icon,
		&color,
		&b.Priority,
		&b.SortOrder,
		&isActive,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	b.Category = domain.TaskKind(category)
	if icon.Valid {
		b.Icon = icon.String
	}
	if color.Valid {
		b.Color = color.String
	}
	b.IsActive = isActive != 0

	return &b, nil
}

// CreateQuickAddButton inserts a new quick-add button.
func (s *Store) CreateQuickAddButton(ctx context.Context, btn *domain.QuickAddButton) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quickadd_buttons (
			id, created_at, updated_at, owner_id, name, category,
			icon, color, priority, sort_order, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		btn.ID,
		formatTime(btn.CreatedAt),
		formatTime(btn.UpdatedAt),
		btn.OwnerID,
		btn.Name,
		string(btn.Category),
		nullString(btn.Icon),
		nullString(btn.Color),
		btn.Priority,
		btn.SortOrder,
		boolToInt(btn.IsActive),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetQuickAddButton retrieves a quick-add button by ID.
func (s *Store) GetQuickAddButton(ctx context.Context, id string) (*domain.QuickAddButton, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+quickAddColumns+` FROM quickadd_buttons WHERE id = ?`, id)

	b, err := scanQuickAddButton(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateQuickAddButton performs a full row update.
func (s *Store) UpdateQuickAddButton(ctx context.Context, btn *domain.QuickAddButton) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE quickadd_buttons SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			name = ?,
			category = ?,
			icon = ?,
			color = ?,
			priority = ?,
			sort_order = ?,
			is_active = ?
		WHERE id = ?`,
		formatTime(btn.CreatedAt),
		formatTime(btn.UpdatedAt),
		btn.OwnerID,
		btn.Name,
		string(btn.Category),
		nullString(btn.Icon),
		nullString(btn.Color),
		btn.Priority,
		btn.SortOrder,
		boolToInt(btn.IsActive),
		btn.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeleteQuickAddButton performs a hard delete by ID.
func (s *Store) DeleteQuickAddButton(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM quickadd_buttons WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListQuickAddButtons returns all buttons for an owner, by sort order.
func (s *Store) ListQuickAddButtons(ctx context.Context, ownerID string) ([]*domain.QuickAddButton, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quickAddColumns+` FROM quickadd_buttons
		WHERE owner_id = ? ORDER BY sort_order ASC, created_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buttons []*domain.QuickAddButton
	for rows.Next() {
		b, err := scanQuickAddButton(rows)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buttons, nil
}
