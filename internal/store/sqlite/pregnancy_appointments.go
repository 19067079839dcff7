package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

const pregnancyAppointmentColumns = `id, created_at, updated_at, owner_id, title, date,
	time, doctor, location, notes, completed`

func scanPregnancyAppointment(scanner interface{ Scan(dest ...any) error }) (*domain.PregnancyAppointment, error) {
	var a domain.PregnancyAppointment

	var (
		createdAt string
		updatedAt string
		timeOfDay sql.NullString
		doctor    sql.NullString
		location  sql.NullString
		notes     sql.NullString
		completed int
	)

	err := scanner.Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
		&a.OwnerID,
		&a.Title,
		&a.Date,
		&timeOfDay,
		&doctor,
		&location,
		&notes,
		&completed,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if timeOfDay.Valid {
		a.Time = timeOfDay.String
	}
	if doctor.Valid {
		a.Doctor = doctor.String
	}
	if location.Valid {
		a.Location = location.String
	}
	if notes.Valid {
		a.Notes = notes.String
	}
	a.Completed = completed != 0

	return &a, nil
}

// CreatePregnancyAppointment inserts a new pregnancy appointment.
func (s *Store) CreatePregnancyAppointment(ctx context.Context, appt *domain.PregnancyAppointment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pregnancy_appointments (
			id, created_at, updated_at, owner_id, title, date,
			time, doctor, location, notes, completed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		appt.ID,
		formatTime(appt.CreatedAt),
		formatTime(appt.UpdatedAt),
		appt.OwnerID,
		appt.Title,
		appt.Date,
		nullString(appt.Time),
		nullString(appt.Doctor),
		nullString(appt.Location),
		nullString(appt.Notes),
		boolToInt(appt.Completed),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPregnancyAppointment retrieves a pregnancy appointment by ID.
func (s *Store) GetPregnancyAppointment(ctx context.Context, id string) (*domain.PregnancyAppointment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+pregnancyAppointmentColumns+` FROM pregnancy_appointments WHERE id = ?`, id)

	a, err := scanPregnancyAppointment(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdatePregnancyAppointment performs a full row update.
func (s *Store) UpdatePregnancyAppointment(ctx context.Context, appt *domain.PregnancyAppointment) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE pregnancy_appointments SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			title = ?,
			date = ?,
			time = ?,
			doctor = ?,
			location = ?,
			notes = ?,
			completed = ?
		WHERE id = ?`,
		formatTime(appt.CreatedAt),
		formatTime(appt.UpdatedAt),
		appt.OwnerID,
		appt.Title,
		appt.Date,
		nullString(appt.Time),
		nullString(appt.Doctor),
		nullString(appt.Location),
		nullString(appt.Notes),
		boolToInt(appt.Completed),
		appt.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeletePregnancyAppointment performs a hard delete by ID.
func (s *Store) DeletePregnancyAppointment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM pregnancy_appointments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListPregnancyAppointments returns all pregnancy appointments for an owner.
func (s *Store) ListPregnancyAppointments(ctx context.Context, ownerID string) ([]*domain.PregnancyAppointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+pregnancyAppointmentColumns+` FROM pregnancy_appointments
		WHERE owner_id = ? ORDER BY date ASC, created_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPregnancyAppointments(rows)
}

// ListPregnancyAppointmentsForDate returns an owner's pregnancy appointments
// on an exact date.
func (s *Store) ListPregnancyAppointmentsForDate(ctx context.Context, ownerID, date string) ([]*domain.PregnancyAppointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+pregnancyAppointmentColumns+` FROM pregnancy_appointments
		WHERE owner_id = ? AND date = ? ORDER BY created_at ASC`, ownerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPregnancyAppointments(rows)
}

func collectPregnancyAppointments(rows *sql.Rows) ([]*domain.PregnancyAppointment, error) {
	var appts []*domain.PregnancyAppointment
	for rows.Next() {
		a, err := scanPregnancyAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return appts, nil
}
