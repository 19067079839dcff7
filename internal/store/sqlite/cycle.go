package sqlite

import (
	"context"
	"database/sql"
	json "github.com/go-json-experiment/json"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

// Symptom lists are stored as JSON arrays in a TEXT column.

const cycleEntryColumns = `id, created_at, updated_at, owner_id, start_date,
	end_date, flow, symptoms, notes`

func scanCycleEntry(scanner interface{ Scan(dest ...any) error }) (*domain.CycleEntry, error) {
	var e domain.CycleEntry

	var (
		createdAt    string
		updatedAt    string
		endDate      sql.NullString
		flow         string
		symptomsJSON string
		notes        sql.NullString
	)

	err := scanner.Scan(
		&e.ID,
		&createdAt,
		&updatedAt,
		&e.OwnerID,
		&e.StartDate,
		&endDate,
		&flow,
		&symptomsJSON,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	e.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	e.Flow = domain.FlowIntensity(flow)
	if endDate.Valid {
		e.EndDate = endDate.String
	}
	if notes.Valid {
		e.Notes = notes.String
	}
	if err := json.Unmarshal([]byte(symptomsJSON), &e.Symptoms); err != nil {
		return nil, err
	}

	return &e, nil
}

// CreateCycleEntry inserts a new cycle entry.
func (s *Store) CreateCycleEntry(ctx context.Context, entry *domain.CycleEntry) error {
	symptomsJSON, err := json.Marshal(entry.Symptoms)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cycle_entries (
			id, created_at, updated_at, owner_id, start_date,
			end_date, flow, symptoms, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		formatTime(entry.CreatedAt),
		formatTime(entry.UpdatedAt),
		entry.OwnerID,
		entry.StartDate,
		nullString(entry.EndDate),
		string(entry.Flow),
		string(symptomsJSON),
		nullString(entry.Notes),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetCycleEntry retrieves a cycle entry by ID.
func (s *Store) GetCycleEntry(ctx context.Context, id string) (*domain.CycleEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cycleEntryColumns+` FROM cycle_entries WHERE id = ?`, id)

	e, err := scanCycleEntry(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateCycleEntry performs a full row update.
func (s *Store) UpdateCycleEntry(ctx context.Context, entry *domain.CycleEntry) error {
	symptomsJSON, err := json.Marshal(entry.Symptoms)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE cycle_entries SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			start_date = ?,
			end_date = ?,
			flow = ?,
			symptoms = ?,
			notes = ?
		WHERE id = ?`,
		formatTime(entry.CreatedAt),
		formatTime(entry.UpdatedAt),
		entry.OwnerID,
		entry.StartDate,
		nullString(entry.EndDate),
		string(entry.Flow),
		string(symptomsJSON),
		nullString(entry.Notes),
		entry.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeleteCycleEntry performs a hard delete by ID.
func (s *Store) DeleteCycleEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM cycle_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListCycleEntries returns all cycle entries for an owner, newest first.
func (s *Store) ListCycleEntries(ctx context.Context, ownerID string) ([]*domain.CycleEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+cycleEntryColumns+` FROM cycle_entries
		WHERE owner_id = ? ORDER BY start_date DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCycleEntries(rows)
}

// ListCycleEntriesForDate returns an owner's cycle entries starting on an
// exact date.
func (s *Store) ListCycleEntriesForDate(ctx context.Context, ownerID, date string) ([]*domain.CycleEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+cycleEntryColumns+` FROM cycle_entries
		WHERE owner_id = ? AND start_date = ? ORDER BY created_at ASC`, ownerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCycleEntries(rows)
}

func collectCycleEntries(rows *sql.Rows) ([]*domain.CycleEntry, error) {
	var entries []*domain.CycleEntry
	for rows.Next() {
		e, err := scanCycleEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

const symptomLogColumns = `id, created_at, updated_at, owner_id, date,
	symptoms, mood, notes`

func scanSymptomLog(scanner interface{ Scan(dest ...any) error }) (*domain.SymptomLog, error) {
	var l domain.SymptomLog

	var (
		createdAt    string
		updatedAt    string
		symptomsJSON string
		mood         sql.NullString
		notes        sql.NullString
	)

	err := scanner.Scan(
		&l.ID,
		&createdAt,
		&updatedAt,
		&l.OwnerID,
		&l.Date,
		&symptomsJSON,
		&mood,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	l.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	l.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if mood.Valid {
		l.Mood = mood.String
	}
	if notes.Valid {
		l.Notes = notes.String
	}
	if err := json.Unmarshal([]byte(symptomsJSON), &l.Symptoms); err != nil {
		return nil, err
	}

	return &l, nil
}

// CreateSymptomLog inserts a new symptom log.
func (s *Store) CreateSymptomLog(ctx context.Context, log *domain.SymptomLog) error {
	symptomsJSON, err := json.Marshal(log.Symptoms)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO symptom_logs (
			id, created_at, updated_at, owner_id, date,
			symptoms, mood, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		formatTime(log.CreatedAt),
		formatTime(log.UpdatedAt),
		log.OwnerID,
		log.Date,
		string(symptomsJSON),
		nullString(log.Mood),
		nullString(log.Notes),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetSymptomLog retrieves a symptom log by ID.
func (s *Store) GetSymptomLog(ctx context.Context, id string) (*domain.SymptomLog, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+symptomLogColumns+` FROM symptom_logs WHERE id = ?`, id)

	l, err := scanSymptomLog(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteSymptomLog performs a hard delete by ID.
func (s *Store) DeleteSymptomLog(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM symptom_logs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListSymptomLogs returns all symptom logs for an owner, newest first.
func (s *Store) ListSymptomLogs(ctx context.Context, ownerID string) ([]*domain.SymptomLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+symptomLogColumns+` FROM symptom_logs
		WHERE owner_id = ? ORDER BY date DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.SymptomLog
	for rows.Next() {
		l, err := scanSymptomLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
