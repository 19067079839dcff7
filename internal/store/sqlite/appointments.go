package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

// appointmentColumns is the ordered list of columns selected in appointment
// queries. Must match the scan order in scanAppointment.
const appointmentColumns = `id, created_at, updated_at, owner_id, title, date,
	time, location, notes, completed`

func scanAppointment(scanner interface{ Scan(dest ...any) error }) (*domain.Appointment, error) {
	var a domain.Appointment

	var (
		createdAt string
		updatedAt string
		timeOfDay sql.NullString
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
	if location.Valid {
		a.Location = location.String
	}
	if notes.Valid {
		a.Notes = notes.String
	}
	a.Completed = completed != 0

	return &a, nil
}

// CreateAppointment inserts a new appointment.
func (s *Store) CreateAppointment(ctx context.Context, appt *domain.Appointment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, created_at, updated_at, owner_id, title, date,
			time, location, notes, completed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		appt.ID,
		formatTime(appt.CreatedAt),
		formatTime(appt.UpdatedAt),
		appt.OwnerID,
		appt.Title,
		appt.Date,
		nullString(appt.Time),
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

// GetAppointment retrieves an appointment by ID.
func (s *Store) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)

	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAppointment performs a full row update on an existing appointment.
func (s *Store) UpdateAppointment(ctx context.Context, appt *domain.Appointment) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE appointments SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			title = ?,
			date = ?,
			time = ?,
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

// DeleteAppointment performs a hard delete of an appointment by ID.
func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListAppointments returns all appointments for an owner, ordered by date.
func (s *Store) ListAppointments(ctx context.Context, ownerID string) ([]*domain.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE owner_id = ? ORDER BY date ASC, created_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

// ListAppointmentsForDate returns an owner's appointments on an exact date.
func (s *Store) ListAppointmentsForDate(ctx context.Context, ownerID, date string) ([]*domain.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE owner_id = ? AND date = ? ORDER BY created_at ASC`, ownerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func collectAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	var appts []*domain.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
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

// requireRowAffected converts a zero-row update or delete into ErrNotFound.
func requireRowAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
