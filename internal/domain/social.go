package domain

// PeerStatus tracks the state of a peer relationship.
type PeerStatus string

const (
	// PeerStatusPending means the invite has been sent but not accepted.
	PeerStatusPending PeerStatus = "pending"
	// PeerStatusAccepted means both sides agreed to the relationship.
	PeerStatusAccepted PeerStatus = "accepted"
)

// Valid checks if the status is a known value.
func (s PeerStatus) Valid() bool {
	return s == PeerStatusPending || s == PeerStatusAccepted
}

// Peer represents a relationship from an owner to another user. Data only
// flows between the two once the status is accepted and both sides have
// enabled the matching sync preference.
type Peer struct {
	Record
	OwnerID string     `json:"owner_id"`
	PeerID  string     `json:"peer_id"`
	Status  PeerStatus `json:"status"`
}

// FeatureKeyFitness is the sync-preference key controlling fitness activity
// sharing. It is the only feature key currently defined.
const FeatureKeyFitness = "fitness"

// SyncPreference is a per-owner, per-feature opt-in flag. Both sides of a
// peer pair must enable the same key for cross-visibility.
type SyncPreference struct {
	Record
	OwnerID    string `json:"owner_id"`
	FeatureKey string `json:"feature_key"`
	Enabled    bool   `json:"enabled"`
}

// ParticipantStatus tracks a peer's standing on a joined activity.
type ParticipantStatus string

const (
	ParticipantJoined ParticipantStatus = "joined"
	ParticipantMaybe  ParticipantStatus = "maybe"
)

// Valid checks if the status is a known value.
func (s ParticipantStatus) Valid() bool {
	return s == ParticipantJoined || s == ParticipantMaybe
}

// ActivityParticipant records a peer joining another peer's activity.
// Distinct from ownership: the activity owner never has a participant row.
// Uniqueness on (activity, participant) is enforced by the store so two
// concurrent joins cannot both succeed.
type ActivityParticipant struct {
	Record
	ActivityID    string            `json:"activity_id"`
	ActivityKind  TaskKind          `json:"activity_kind"`
	ParticipantID string            `json:"participant_id"`
	Status        ParticipantStatus `json:"status"`
	Note          string            `json:"note,omitempty"`
}

// OverlayActivity is a fitness activity as seen through the peer overlay:
// the caller's own activities plus accepted peers' activities, each
// annotated with sharing metadata.
type OverlayActivity struct {
	TaskItem
	PeerDisplayName  string               `json:"peer_display_name,omitempty"`
	IsPeerActivity   bool                 `json:"is_peer_activity"`
	ParticipantCount int                  `json:"participant_count"`
	Participation    *ActivityParticipant `json:"participation,omitempty"`
}
