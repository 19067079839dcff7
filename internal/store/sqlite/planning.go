package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

// The planning singletons (wedding, pregnancy, baby shower) all upsert on the
// owner: the unique owner_id constraint plus ON CONFLICT turns a second
// "create" into an overwrite, keeping the original row ID and created_at.

const weddingInfoColumns = `id, created_at, updated_at, owner_id, partner_name,
	wedding_date, venue, budget, guest_count, notes`

func scanWeddingInfo(scanner interface{ Scan(dest ...any) error }) (*domain.WeddingInfo, error) {
	var info domain.WeddingInfo

	var (
		createdAt   string
		updatedAt   string
		partnerName sql.NullString
		weddingDate sql.NullString
		venue       sql.NullString
		notes       sql.NullString
	)

	err := scanner.Scan(
		&info.ID,
		&createdAt,
		&updatedAt,
		&info.OwnerID,
		&partnerName,
		&weddingDate,
		&venue,
		&info.Budget,
		&info.GuestCount,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	info.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	info.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if partnerName.Valid {
		info.PartnerName = partnerName.String
	}
	if weddingDate.Valid {
		info.WeddingDate = weddingDate.String
	}
	if venue.Valid {
		info.Venue = venue.String
	}
	if notes.Valid {
		info.Notes = notes.String
	}

	return &info, nil
}

// GetWeddingInfo retrieves the owner's wedding info singleton.
// Returns store.ErrNotFound if none has been created yet.
func (s *Store) GetWeddingInfo(ctx context.Context, ownerID string) (*domain.WeddingInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+weddingInfoColumns+` FROM wedding_info WHERE owner_id = ?`, ownerID)

	info, err := scanWeddingInfo(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// UpsertWeddingInfo creates or overwrites the owner's wedding info.
func (s *Store) UpsertWeddingInfo(ctx context.Context, info *domain.WeddingInfo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wedding_info (
			id, created_at, updated_at, owner_id, partner_name,
			wedding_date, venue, budget, guest_count, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			updated_at = excluded.updated_at,
			partner_name = excluded.partner_name,
			wedding_date = excluded.wedding_date,
			venue = excluded.venue,
			budget = excluded.budget,
			guest_count = excluded.guest_count,
			notes = excluded.notes`,
		info.ID,
		formatTime(info.CreatedAt),
		formatTime(info.UpdatedAt),
		info.OwnerID,
		nullString(info.PartnerName),
		nullString(info.WeddingDate),
		nullString(info.Venue),
		info.Budget,
		info.GuestCount,
		nullString(info.Notes),
	)
	return err
}

const pregnancyInfoColumns = `id, created_at, updated_at, owner_id, due_date,
	conception_date, notes`

func scanPregnancyInfo(scanner interface{ Scan(dest ...any) error }) (*domain.PregnancyInfo, error) {
	var info domain.PregnancyInfo

	var (
		createdAt      string
		updatedAt      string
		conceptionDate sql.NullString
		notes          sql.NullString
	)

	err := scanner.Scan(
		&info.ID,
		&createdAt,
		&updatedAt,
		&info.OwnerID,
		&info.DueDate,
		&conceptionDate,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	info.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	info.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if conceptionDate.Valid {
		info.ConceptionDate = conceptionDate.String
	}
	if notes.Valid {
		info.Notes = notes.String
	}

	return &info, nil
}

// GetPregnancyInfo retrieves the owner's pregnancy info singleton.
// Returns store.ErrNotFound if none has been created yet.
func (s *Store) GetPregnancyInfo(ctx context.Context, ownerID string) (*domain.PregnancyInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+pregnancyInfoColumns+` FROM pregnancy_info WHERE owner_id = ?`, ownerID)

	info, err := scanPregnancyInfo(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// UpsertPregnancyInfo creates or overwrites the owner's pregnancy info.
func (s *Store) UpsertPregnancyInfo(ctx context.Context, info *domain.PregnancyInfo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pregnancy_info (
			id, created_at, updated_at, owner_id, due_date,
			conception_date, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			updated_at = excluded.updated_at,
			due_date = excluded.due_date,
			conception_date = excluded.conception_date,
			notes = excluded.notes`,
		info.ID,
		formatTime(info.CreatedAt),
		formatTime(info.UpdatedAt),
		info.OwnerID,
		info.DueDate,
		nullString(info.ConceptionDate),
		nullString(info.Notes),
	)
	return err
}

const babyShowerInfoColumns = `id, created_at, updated_at, owner_id, shower_date,
	venue, theme, budget, guest_count, notes`

func scanBabyShowerInfo(scanner interface{ Scan(dest ...any) error }) (*domain.BabyShowerInfo, error) {
	var info domain.BabyShowerInfo

	var (
		createdAt  string
		updatedAt  string
		showerDate sql.NullString
		venue      sql.NullString
		theme      sql.NullString
		notes      sql.NullString
	)

	err := scanner.Scan(
		&info.ID,
		&createdAt,
		&updatedAt,
		&info.OwnerID,
		&showerDate,
		&venue,
		&theme,
		&info.Budget,
		&info.GuestCount,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	info.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	info.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if showerDate.Valid {
		info.ShowerDate = showerDate.String
	}
	if venue.Valid {
		info.Venue = venue.String
	}
	if theme.Valid {
		info.Theme = theme.String
	}
	if notes.Valid {
		info.Notes = notes.String
	}

	return &info, nil
}

// GetBabyShowerInfo retrieves the owner's baby shower info singleton.
// Returns store.ErrNotFound if none has been created yet.
func (s *Store) GetBabyShowerInfo(ctx context.Context, ownerID string) (*domain.BabyShowerInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+babyShowerInfoColumns+` FROM babyshower_info WHERE owner_id = ?`, ownerID)

	info, err := scanBabyShowerInfo(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// UpsertBabyShowerInfo creates or overwrites the owner's baby shower info.
func (s *Store) UpsertBabyShowerInfo(ctx context.Context, info *domain.BabyShowerInfo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO babyshower_info (
			id, created_at, updated_at, owner_id, shower_date,
			venue, theme, budget, guest_count, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			updated_at = excluded.updated_at,
			shower_date = excluded.shower_date,
			venue = excluded.venue,
			theme = excluded.theme,
			budget = excluded.budget,
			guest_count = excluded.guest_count,
			notes = excluded.notes`,
		info.ID,
		formatTime(info.CreatedAt),
		formatTime(info.UpdatedAt),
		info.OwnerID,
		nullString(info.ShowerDate),
		nullString(info.Venue),
		nullString(info.Theme),
		info.Budget,
		info.GuestCount,
		nullString(info.Notes),
	)
	return err
}
