package sqlite

import (
	"context"
	"database/sql"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

const peerColumns = `id, created_at, updated_at, owner_id, peer_id, status`

func scanPeer(scanner interface{ Scan(dest ...any) error }) (*domain.Peer, error) {
	var p domain.Peer

	var (
		createdAt string
		updatedAt string
		status    string
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&p.OwnerID,
		&p.PeerID,
		&status,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PeerStatus(status)

	return &p, nil
}

// CreatePeer inserts a new peer relationship.
// Returns store.ErrAlreadyExists when the same pair already has a row.
func (s *Store) CreatePeer(ctx context.Context, peer *domain.Peer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO peers (
			id, created_at, updated_at, owner_id, peer_id, status
		) VALUES (?, ?, ?, ?, ?, ?)`,
		peer.ID,
		formatTime(peer.CreatedAt),
		formatTime(peer.UpdatedAt),
		peer.OwnerID,
		peer.PeerID,
		string(peer.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPeer retrieves a peer relationship by ID.
func (s *Store) GetPeer(ctx context.Context, id string) (*domain.Peer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+peerColumns+` FROM peers WHERE id = ?`, id)

	p, err := scanPeer(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPeerBetween finds the relationship row linking two users, regardless of
// which side sent the invite.
func (s *Store) GetPeerBetween(ctx context.Context, userA, userB string) (*domain.Peer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+peerColumns+` FROM peers
		WHERE (owner_id = ? AND peer_id = ?) OR (owner_id = ? AND peer_id = ?)`,
		userA, userB, userB, userA)

	p, err := scanPeer(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePeer performs a full row update.
func (s *Store) UpdatePeer(ctx context.Context, peer *domain.Peer) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE peers SET
			created_at = ?,
			updated_at = ?,
			owner_id = ?,
			peer_id = ?,
			status = ?
		WHERE id = ?`,
		formatTime(peer.CreatedAt),
		formatTime(peer.UpdatedAt),
		peer.OwnerID,
		peer.PeerID,
		string(peer.Status),
		peer.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeletePeer performs a hard delete by ID.
func (s *Store) DeletePeer(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM peers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListPeersOf returns every relationship the user is on either side of.
func (s *Store) ListPeersOf(ctx context.Context, userID string) ([]*domain.Peer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+peerColumns+` FROM peers
		WHERE owner_id = ? OR peer_id = ? ORDER BY created_at ASC`,
		userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var peers []*domain.Peer
	for rows.Next() {
		p, err := scanPeer(rows)
		if err != nil {
			return nil, err
		}
		peers = append(peers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return peers, nil
}

const syncPreferenceColumns = `id, created_at, updated_at, owner_id, feature_key, enabled`

func scanSyncPreference(scanner interface{ Scan(dest ...any) error }) (*domain.SyncPreference, error) {
	var p domain.SyncPreference

	var (
		createdAt string
		updatedAt string
		enabled   int
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&p.OwnerID,
		&p.FeatureKey,
		&enabled,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	p.Enabled = enabled != 0

	return &p, nil
}

// GetSyncPreference retrieves one owner's preference for a feature key.
// Returns store.ErrNotFound if the owner never set it.
func (s *Store) GetSyncPreference(ctx context.Context, ownerID, featureKey string) (*domain.SyncPreference, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+syncPreferenceColumns+` FROM sync_preferences
		WHERE owner_id = ? AND feature_key = ?`, ownerID, featureKey)

	p, err := scanSyncPreference(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertSyncPreference creates or overwrites an owner's feature preference.
func (s *Store) UpsertSyncPreference(ctx context.Context, pref *domain.SyncPreference) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_preferences (
			id, created_at, updated_at, owner_id, feature_key, enabled
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, feature_key) DO UPDATE SET
			updated_at = excluded.updated_at,
			enabled = excluded.enabled`,
		pref.ID,
		formatTime(pref.CreatedAt),
		formatTime(pref.UpdatedAt),
		pref.OwnerID,
		pref.FeatureKey,
		boolToInt(pref.Enabled),
	)
	return err
}

// ListSyncPreferences returns all of an owner's feature preferences.
func (s *Store) ListSyncPreferences(ctx context.Context, ownerID string) ([]*domain.SyncPreference, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+syncPreferenceColumns+` FROM sync_preferences
		WHERE owner_id = ? ORDER BY feature_key ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []*domain.SyncPreference
	for rows.Next() {
		p, err := scanSyncPreference(rows)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prefs, nil
}

const participantColumns = `id, created_at, updated_at, activity_id, activity_kind,
	participant_id, status, note`

func scanParticipant(scanner interface{ Scan(dest ...any) error }) (*domain.ActivityParticipant, error) {
	var p domain.ActivityParticipant

	var (
		createdAt    string
		updatedAt    string
		activityKind string
		status       string
		note         sql.NullString
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&p.ActivityID,
		&activityKind,
		&p.ParticipantID,
		&status,
		&note,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	p.ActivityKind = domain.TaskKind(activityKind)
	p.Status = domain.ParticipantStatus(status)
	if note.Valid {
		p.Note = note.String
	}

	return &p, nil
}

// CreateParticipant inserts a participation row. The unique
// (activity, participant) constraint makes a double join fail with
// store.ErrAlreadyExists rather than inserting twice.
func (s *Store) CreateParticipant(ctx context.Context, p *domain.ActivityParticipant) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_participants (
			id, created_at, updated_at, activity_id, activity_kind,
			participant_id, status, note
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
		p.ActivityID,
		string(p.ActivityKind),
		p.ParticipantID,
		string(p.Status),
		nullString(p.Note),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetParticipant retrieves one user's participation on an activity.
func (s *Store) GetParticipant(ctx context.Context, activityID, participantID string) (*domain.ActivityParticipant, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+participantColumns+` FROM activity_participants
		WHERE activity_id = ? AND participant_id = ?`, activityID, participantID)

	p, err := scanParticipant(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteParticipant removes one user's participation on an activity.
func (s *Store) DeleteParticipant(ctx context.Context, activityID, participantID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM activity_participants
		WHERE activity_id = ? AND participant_id = ?`, activityID, participantID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListParticipants returns all participants of an activity, oldest first.
func (s *Store) ListParticipants(ctx context.Context, activityID string) ([]*domain.ActivityParticipant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+participantColumns+` FROM activity_participants
		WHERE activity_id = ? ORDER BY created_at ASC`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*domain.ActivityParticipant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return participants, nil
}

// CountParticipants returns the number of participants on an activity.
func (s *Store) CountParticipants(ctx context.Context, activityID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity_participants WHERE activity_id = ?`, activityID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
