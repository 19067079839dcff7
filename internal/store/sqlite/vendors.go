package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

const vendorColumns = `id, created_at, updated_at, owner_id, name, category,
	email, phone, status, quote, notes`

func scanVendor(scanner interface{ Scan(dest ...any) error }) (*domain.Vendor, error) {
	var v domain.Vendor

	var (
		createdAt string
		updatedAt string
		category  sql.NullString
		email     sql.NullString
		phone     sql.NullString
		status    string
		notes     sql.NullString
	)

	err := scanner.Scan(
		&v.ID,
		&createdAt,
		&updatedAt,
		&v.OwnerID,
		&v.Name,
		&category,
		&email,
		&phone,
		&status,
		&v.Quote,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	v.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	v.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	v.Status = domain.VendorStatus(status)
	if category.Valid {
		v.Category = category.String
	}
	if email.Valid {
		v.Email = email.String
	}
	if phone.Valid {
		v.Phone = phone.String
	}
	if notes.Valid {
		v.Notes = notes.String
	}

	return &v, nil
}

// CreateVendor inserts a new vendor.
func (s *Store) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendors (
			id, created_at, updated_at, owner_id, name, category,
			email, phone, status, quote, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vendor.ID,
		formatTime(vendor.CreatedAt),
		formatTime(vendor.UpdatedAt),
		vendor.OwnerID,
		vendor.Name,
		nullString(vendor.Category),
		nullString(vendor.Email),
		nullString(vendor.Phone),
		string(vendor.Status),
		vendor.Quote,
		nullString(vendor.Notes),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetVendor retrieves a vendor by ID.
func (s *Store) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE id = ?`, id)

	v, err := scanVendor(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateVendor performs a full row update.
func (s *Store) UpdateVendor(ctx context.Context, vendor *domain.Vendor) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE vendors SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			name = ?,
			category = ?,
			email = ?,
			phone = ?,
			status = ?,
			quote = ?,
			notes = ?
		WHERE id = ?`,
		formatTime(vendor.CreatedAt),
		formatTime(vendor.UpdatedAt),
		vendor.OwnerID,
		vendor.Name,
		nullString(vendor.Category),
		nullString(vendor.Email),
		nullString(vendor.Phone),
		string(vendor.Status),
		vendor.Quote,
		nullString(vendor.Notes),
		vendor.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeleteVendor performs a hard delete by ID.
func (s *Store) DeleteVendor(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListVendors returns all vendors for an owner, ordered by name.
func (s *Store) ListVendors(ctx context.Context, ownerID string) ([]*domain.Vendor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+vendorColumns+` FROM vendors
		WHERE owner_id = ? ORDER BY name ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*domain.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vendors, nil
}
