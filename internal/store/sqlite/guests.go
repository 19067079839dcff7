package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

const guestColumns = `id, created_at, updated_at, owner_id, event, name,
	email, phone, status, notes`

func scanGuest(scanner interface{ Scan(dest ...any) error }) (*domain.Guest, error) {
	var g domain.Guest

	var (
		createdAt string
		updatedAt string
		event     string
		email     sql.NullString
		phone     sql.NullString
		status    string
		notes     sql.NullString
	)

	err := scanner.Scan(
		&g.ID,
		&createdAt,
		&updatedAt,
		&g.OwnerID,
		&event,
		&g.Name,
		&email,
		&phone,
		&status,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	g.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	g.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	g.Event = domain.GuestEvent(event)
	g.Status = domain.RSVPStatus(status)
	if email.Valid {
		g.Email = email.String
	}
	if phone.Valid {
		g.Phone = phone.String
	}
	if notes.Valid {
		g.Notes = notes.String
	}

	return &g, nil
}

// CreateGuest inserts a new guest.
func (s *Store) CreateGuest(ctx context.Context, guest *domain.Guest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guests (
			id, created_at, updated_at, owner_id, event, name,
			email, phone, status, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		guest.ID,
		formatTime(guest.CreatedAt),
		formatTime(guest.UpdatedAt),
		guest.OwnerID,
		string(guest.Event),
		guest.Name,
		nullString(guest.Email),
		nullString(guest.Phone),
		string(guest.Status),
		nullString(guest.Notes),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetGuest retrieves a guest by ID.
func (s *Store) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE id = ?`, id)

	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGuest performs a full row update.
func (s *Store) UpdateGuest(ctx context.Context, guest *domain.Guest) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE guests SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			event = ?,
			name = ?,
			email = ?,
			phone = ?,
			status = ?,
			notes = ?
		WHERE id = ?`,
		formatTime(guest.CreatedAt),
		formatTime(guest.UpdatedAt),
		guest.OwnerID,
		string(guest.Event),
		guest.Name,
		nullString(guest.Email),
		nullString(guest.Phone),
		string(guest.Status),
		nullString(guest.Notes),
		guest.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeleteGuest performs a hard delete by ID.
func (s *Store) DeleteGuest(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListGuests returns an owner's guests for one event, ordered by name.
func (s *Store) ListGuests(ctx context.Context, ownerID string, event domain.GuestEvent) ([]*domain.Guest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+guestColumns+` FROM guests
		WHERE owner_id = ? AND event = ? ORDER BY name ASC`, ownerID, string(event))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []*domain.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guests, nil
}
