package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	domainerrors "github.com/dayplanapp/dayplan-server/internal/errors"
	"github.com/dayplanapp/dayplan-server/internal/id"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

// SocialService manages peer relationships, sync preferences, and the shared
// fitness activity overlay. Activity data only crosses accounts when the peer
// relationship is accepted and both sides have enabled the fitness sync
// preference.
type SocialService struct {
	store  store.Store
	logger *slog.Logger
}

// NewSocialService creates a new social service.
func NewSocialService(st store.Store, logger *slog.Logger) *SocialService {
	return &SocialService{store: st, logger: logger}
}

// InvitePeerRequest identifies the user to invite by email.
type InvitePeerRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SetSyncPreferenceRequest contains a sync preference flag.
type SetSyncPreferenceRequest struct {
	FeatureKey string `json:"feature_key" validate:"required,oneof=fitness"`
	Enabled    bool   `json:"enabled"`
}

// JoinActivityRequest contains the optional fields of a join.
type JoinActivityRequest struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=joined maybe"`
	Note   string `json:"note,omitempty" validate:"max=500"`
}

// PeerView is a peer relationship annotated with the other user's display
// name, resolved relative to the viewer.
type PeerView struct {
	domain.Peer
	PeerDisplayName string `json:"peer_display_name"`
	// Inviter is true when the viewer sent the invite.
	Inviter bool `json:"inviter"`
}

// InvitePeer creates a pending peer relationship toward another user. The
// invitee must already have an account; a relationship in either direction
// blocks a second one.
func (s *SocialService) InvitePeer(ctx context.Context, ownerID string, req InvitePeerRequest) (*domain.Peer, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	invitee, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("no user with that email")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if invitee.ID == ownerID {
		return nil, domainerrors.Validation("cannot invite yourself")
	}

	if _, err := s.store.GetPeerBetween(ctx, ownerID, invitee.ID); err == nil {
		return nil, domainerrors.AlreadyExists("peer relationship already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing peer: %w", err)
	}

	peerID, err := id.Generate("peer")
	if err != nil {
		return nil, fmt.Errorf("generate peer ID: %w", err)
	}

	peer := &domain.Peer{
		OwnerID: ownerID,
		PeerID:  invitee.ID,
		Status:  domain.PeerStatusPending,
	}
	peer.ID = peerID
	peer.InitTimestamps()

	if err := s.store.CreatePeer(ctx, peer); err != nil {
		// Racing invites hit the unique constraint.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("peer relationship already exists")
		}
		return nil, fmt.Errorf("create peer: %w", err)
	}

	s.logger.Info("peer invited", "owner_id", ownerID, "peer_id", invitee.ID)

	return peer, nil
}

// AcceptPeer accepts a pending invite. Only the invited user can accept;
// accepting an already-accepted relationship is a no-op.
func (s *SocialService) AcceptPeer(ctx context.Context, userID, relationshipID string) (*domain.Peer, error) {
	peer, err := s.getRelationship(ctx, userID, relationshipID)
	if err != nil {
		return nil, err
	}
	if peer.PeerID != userID {
		return nil, domainerrors.Forbidden("only the invited user can accept")
	}
	if peer.Status == domain.PeerStatusAccepted {
		return peer, nil
	}

	peer.Status = domain.PeerStatusAccepted
	peer.Touch()
	if err := s.store.UpdatePeer(ctx, peer); err != nil {
		return nil, fmt.Errorf("update peer: %w", err)
	}

	s.logger.Info("peer accepted", "relationship_id", relationshipID)

	return peer, nil
}

// RemovePeer deletes a relationship. Either side may remove it at any stage.
func (s *SocialService) RemovePeer(ctx context.Context, userID, relationshipID string) error {
	if _, err := s.getRelationship(ctx, userID, relationshipID); err != nil {
		return err
	}
	if err := s.store.DeletePeer(ctx, relationshipID); err != nil {
		return fmt.Errorf("delete peer: %w", err)
	}
	return nil
}

// ListPeers returns the user's relationships on both sides, each annotated
// with the other user's display name.
func (s *SocialService) ListPeers(ctx context.Context, userID string) ([]PeerView, error) {
	peers, err := s.store.ListPeersOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list peers: %w", err)
	}

	views := make([]PeerView, 0, len(peers))
	for _, peer := range peers {
		otherID := peer.PeerID
		if otherID == userID {
			otherID = peer.OwnerID
		}
		view := PeerView{Peer: *peer, Inviter: peer.OwnerID == userID}
		if other, err := s.store.GetUser(ctx, otherID); err == nil {
			view.PeerDisplayName = other.DisplayName
		}
		views = append(views, view)
	}
	return views, nil
}

// SetSyncPreference sets a per-feature sharing flag for the caller.
func (s *SocialService) SetSyncPreference(ctx context.Context, ownerID string, req SetSyncPreferenceRequest) (*domain.SyncPreference, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	prefID, err := id.Generate("pref")
	if err != nil {
		return nil, fmt.Errorf("generate preference ID: %w", err)
	}

	pref := &domain.SyncPreference{
		OwnerID:    ownerID,
		FeatureKey: req.FeatureKey,
		Enabled:    req.Enabled,
	}
	pref.ID = prefID
	pref.InitTimestamps()

	if err := s.store.UpsertSyncPreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("save sync preference: %w", err)
	}
	return s.store.GetSyncPreference(ctx, ownerID, req.FeatureKey)
}

// ListSyncPreferences returns the caller's sync preferences.
func (s *SocialService) ListSyncPreferences(ctx context.Context, ownerID string) ([]*domain.SyncPreference, error) {
	prefs, err := s.store.ListSyncPreferences(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sync preferences: %w", err)
	}
	return prefs, nil
}

// VisibleFitnessActivities returns the caller's own fitness activities plus
// those of accepted peers where both sides enabled the fitness preference.
// Peer entries carry the peer's display name and the caller's participation
// record if one exists.
func (s *SocialService) VisibleFitnessActivities(ctx context.Context, userID string) ([]domain.OverlayActivity, error) {
	own, err := s.store.ListTasksByKind(ctx, userID, domain.TaskKindFitness)
	if err != nil {
		return nil, fmt.Errorf("list own activities: %w", err)
	}

	overlay := make([]domain.OverlayActivity, 0, len(own))
	for _, task := range own {
		count, err := s.store.CountParticipants(ctx, task.ID)
		if err != nil {
			return nil, fmt.Errorf("count participants: %w", err)
		}
		overlay = append(overlay, domain.OverlayActivity{
			TaskItem:         *task,
			ParticipantCount: count + 1, // The owner always counts.
		})
	}

	if !s.syncEnabled(ctx, userID) {
		return overlay, nil
	}

	peers, err := s.store.ListPeersOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list peers: %w", err)
	}

	for _, peer := range peers {
		if peer.Status != domain.PeerStatusAccepted {
			continue
		}
		otherID := peer.PeerID
		if otherID == userID {
			otherID = peer.OwnerID
		}
		if !s.syncEnabled(ctx, otherID) {
			continue
		}

		other, err := s.store.GetUser(ctx, otherID)
		if err != nil {
			continue
		}

		tasks, err := s.store.ListTasksByKind(ctx, otherID, domain.TaskKindFitness)
		if err != nil {
			return nil, fmt.Errorf("list peer activities: %w", err)
		}

		for _, task := range tasks {
			count, err := s.store.CountParticipants(ctx, task.ID)
			if err != nil {
				return nil, fmt.Errorf("count participants: %w", err)
			}
			entry := domain.OverlayActivity{
				TaskItem:         *task,
				PeerDisplayName:  other.DisplayName,
				IsPeerActivity:   true,
				ParticipantCount: count + 1,
			}
			if p, err := s.store.GetParticipant(ctx, task.ID, userID); err == nil {
				entry.Participation = p
			}
			overlay = append(overlay, entry)
		}
	}

	return overlay, nil
}

// JoinActivity records the caller as a participant on a peer's fitness
// activity. Owners cannot join their own activities, and activities outside
// the caller's overlay read as not found. A second join conflicts.
func (s *SocialService) JoinActivity(ctx context.Context, userID, activityID string, req JoinActivityRequest) (*domain.ActivityParticipant, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	task, err := s.visibleActivity(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID == userID {
		return nil, domainerrors.Validation("cannot join your own activity")
	}

	status := domain.ParticipantJoined
	if req.Status != "" {
		status = domain.ParticipantStatus(req.Status)
	}

	participantID, err := id.Generate("participant")
	if err != nil {
		return nil, fmt.Errorf("generate participant ID: %w", err)
	}

	participant := &domain.ActivityParticipant{
		ActivityID:    activityID,
		ActivityKind:  domain.TaskKindFitness,
		ParticipantID: userID,
		Status:        status,
		Note:          req.Note,
	}
	participant.ID = participantID
	participant.InitTimestamps()

	if err := s.store.CreateParticipant(ctx, participant); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("already joined this activity")
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}

	s.logger.Info("activity joined", "activity_id", activityID, "participant_id", userID)

	return participant, nil
}

// LeaveActivity removes the caller's participation row.
func (s *SocialService) LeaveActivity(ctx context.Context, userID, activityID string) error {
	if err := s.store.DeleteParticipant(ctx, activityID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("not a participant of this activity")
		}
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}

// getRelationship loads a relationship the user is on either side of.
// Strangers see not found, never forbidden.
func (s *SocialService) getRelationship(ctx context.Context, userID, relationshipID string) (*domain.Peer, error) {
	peer, err := s.store.GetPeer(ctx, relationshipID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("peer relationship not found")
		}
		return nil, err
	}
	if peer.OwnerID != userID && peer.PeerID != userID {
		return nil, domainerrors.NotFound("peer relationship not found")
	}
	return peer, nil
}

// visibleActivity loads a fitness activity the user can see through the
// overlay: their own, or an accepted peer's with both preferences enabled.
// Anything else reads as not found so the API never confirms foreign IDs.
func (s *SocialService) visibleActivity(ctx context.Context, userID, activityID string) (*domain.TaskItem, error) {
	task, err := s.store.GetTask(ctx, activityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("activity not found")
		}
		return nil, err
	}
	if task.Kind != domain.TaskKindFitness {
		return nil, domainerrors.NotFound("activity not found")
	}
	if task.OwnerID == userID {
		return task, nil
	}

	peer, err := s.store.GetPeerBetween(ctx, userID, task.OwnerID)
	if err != nil || peer.Status != domain.PeerStatusAccepted {
		return nil, domainerrors.NotFound("activity not found")
	}
	if !s.syncEnabled(ctx, userID) || !s.syncEnabled(ctx, task.OwnerID) {
		return nil, domainerrors.NotFound("activity not found")
	}
	return task, nil
}

// syncEnabled reports whether a user has opted into fitness sharing. A
// missing preference row counts as disabled.
func (s *SocialService) syncEnabled(ctx context.Context, userID string) bool {
	pref, err := s.store.GetSyncPreference(ctx, userID, domain.FeatureKeyFitness)
	if err != nil {
		return false
	}
	return pref.Enabled
}
