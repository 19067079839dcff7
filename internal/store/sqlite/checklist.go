package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

const checklistCategoryColumns = `id, created_at, updated_at, owner_id, name,
	share_token, is_shared`

func scanChecklistCategory(scanner interface{ Scan(dest ...any) error }) (*domain.ChecklistCategory, error) {
	var c domain.ChecklistCategory

	var (
		createdAt  string
		updatedAt  string
		shareToken sql.NullString
		isShared   int
	)

	err := scanner.Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
		&c.OwnerID,
		&c.Name,
		&shareToken,
		&isShared,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if shareToken.Valid {
		c.ShareToken = &shareToken.String
	}
	c.IsShared = isShared != 0

	return &c, nil
}

// CreateChecklistCategory inserts a new checklist category.
func (s *Store) CreateChecklistCategory(ctx context.Context, cat *domain.ChecklistCategory) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklist_categories (
			id, created_at, updated_at, owner_id, name, share_token, is_shared
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cat.ID,
		formatTime(cat.CreatedAt),
		formatTime(cat.UpdatedAt),
		cat.OwnerID,
		cat.Name,
		nullableString(cat.ShareToken),
		boolToInt(cat.IsShared),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetChecklistCategory retrieves a checklist category by ID.
func (s *Store) GetChecklistCategory(ctx context.Context, id string) (*domain.ChecklistCategory, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+checklistCategoryColumns+` FROM checklist_categories WHERE id = ?`, id)

	c, err := scanChecklistCategory(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateChecklistCategory performs a full row update.
func (s *Store) UpdateChecklistCategory(ctx context.Context, cat *domain.ChecklistCategory) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE checklist_categories SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			name = ?,
			share_token = ?,
			is_shared = ?
		WHERE id = ?`,
		formatTime(cat.CreatedAt),
		formatTime(cat.UpdatedAt),
		cat.OwnerID,
		cat.Name,
		nullableString(cat.ShareToken),
		boolToInt(cat.IsShared),
		cat.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return requireRowAffected(result)
}

// ListChecklistCategories returns all categories for an owner, oldest first.
func (s *Store) ListChecklistCategories(ctx context.Context, ownerID string) ([]*domain.ChecklistCategory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+checklistCategoryColumns+` FROM checklist_categories
		WHERE owner_id = ? ORDER BY created_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []*domain.ChecklistCategory
	for rows.Next() {
		c, err := scanChecklistCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cats, nil
}

// DeleteChecklistCategory removes a category and, via cascade, its items.
// Returns store.ErrLastCategory when the category is the owner's only one;
// the count check and the delete run in the same transaction so two
// concurrent deletes cannot both pass the check.
func (s *Store) DeleteChecklistCategory(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var ownerID string
	err = tx.QueryRowContext(ctx,
		`SELECT owner_id FROM checklist_categories WHERE id = ?`, id).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM checklist_categories WHERE owner_id = ?`, ownerID).Scan(&count)
	if err != nil {
		return err
	}
	if count <= 1 {
		return store.ErrLastCategory
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM checklist_categories WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// EnsureShareToken returns the category's share token, persisting the given
// candidate only when no token exists yet. Running the read and the write in
// one transaction makes repeated share calls idempotent: every caller gets
// the same token back.
func (s *Store) EnsureShareToken(ctx context.Context, categoryID, candidate string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var existing sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT share_token FROM checklist_categories WHERE id = ?`, categoryID).Scan(&existing)
	if err == sql.ErrNoRows {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if existing.Valid && existing.String != "" {
		return existing.String, tx.Commit()
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE checklist_categories SET share_token = ?, is_shared = 1, updated_at = ?
		WHERE id = ?`,
		candidate, formatTime(nowUTC()), categoryID)
	if err != nil {
		if isUniqueViolation(err) {
			return "", store.ErrAlreadyExists
		}
		return "", err
	}

	return candidate, tx.Commit()
}

// GetCategoryByShareToken retrieves a category by its public share token.
func (s *Store) GetCategoryByShareToken(ctx context.Context, token string) (*domain.ChecklistCategory, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+checklistCategoryColumns+` FROM checklist_categories WHERE share_token = ?`, token)

	c, err := scanChecklistCategory(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// RevokeShareToken clears a category's share token, making it private again.
func (s *Store) RevokeShareToken(ctx context.Context, categoryID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE checklist_categories SET share_token = NULL, is_shared = 0, updated_at = ?
		WHERE id = ?`,
		formatTime(nowUTC()), categoryID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

const checklistItemColumns = `id, created_at, updated_at, category_id, text,
	completed, sort_order`

func scanChecklistItem(scanner interface{ Scan(dest ...any) error }) (*domain.ChecklistItem, error) {
	var item domain.ChecklistItem

	var (
		createdAt string
		updatedAt string
		completed int
	)

	err := scanner.Scan(
		&item.ID,
		&createdAt,
		&updatedAt,
		&item.CategoryID,
		&item.Text,
		&completed,
		&item.SortOrder,
	)
	if err != nil {
		return nil, err
	}

	item.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	item.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	item.Completed = completed != 0

	return &item, nil
}

// CreateChecklistItem inserts a new checklist item.
func (s *Store) CreateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklist_items (
			id, created_at, updated_at, category_id, text, completed, sort_order
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
		item.CategoryID,
		item.Text,
		boolToInt(item.Completed),
		item.SortOrder,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetChecklistItem retrieves a checklist item by ID.
func (s *Store) GetChecklistItem(ctx context.Context, id string) (*domain.ChecklistItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+checklistItemColumns+` FROM checklist_items WHERE id = ?`, id)

	item, err := scanChecklistItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateChecklistItem performs a full row update.
func (s *Store) UpdateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE checklist_items SET
			created_at = ?,
			updated_at = ?,
			category_id = ?,
			text = ?,
			completed = ?,
			sort_order = ?
		WHERE id = ?`,
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
		item.CategoryID,
		item.Text,
		boolToInt(item.Completed),
		item.SortOrder,
		item.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeleteChecklistItem performs a hard delete by ID.
func (s *Store) DeleteChecklistItem(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM checklist_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListChecklistItems returns all items in a category, by sort order then age.
func (s *Store) ListChecklistItems(ctx context.Context, categoryID string) ([]*domain.ChecklistItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+checklistItemColumns+` FROM checklist_items
		WHERE category_id = ? ORDER BY sort_order ASC, created_at ASC`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.ChecklistItem
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
