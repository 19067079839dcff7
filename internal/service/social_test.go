package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	domainerrors "github.com/dayplanapp/dayplan-server/internal/errors"
)

// pairPeers sets up two users with an accepted relationship and fitness sync
// enabled on both sides.
func pairPeers(t *testing.T, env *testEnv) (owner, peer *domain.User) {
	t.Helper()
	ctx := context.Background()

	owner = env.makeUser(t, "runner@example.com")
	peer = env.makeUser(t, "buddy@example.com")

	rel, err := env.social.InvitePeer(ctx, owner.ID, InvitePeerRequest{Email: peer.Email})
	require.NoError(t, err)
	_, err = env.social.AcceptPeer(ctx, peer.ID, rel.ID)
	require.NoError(t, err)

	for _, id := range []string{owner.ID, peer.ID} {
		_, err = env.social.SetSyncPreference(ctx, id, SetSyncPreferenceRequest{FeatureKey: "fitness", Enabled: true})
		require.NoError(t, err)
	}
	return owner, peer
}

func TestSocialService_InviteRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.makeUser(t, "alice@example.com")
	bob := env.makeUser(t, "bob@example.com")

	_, err := env.social.InvitePeer(ctx, alice.ID, InvitePeerRequest{Email: "alice@example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation, "self-invite")

	_, err = env.social.InvitePeer(ctx, alice.ID, InvitePeerRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound, "unknown invitee")

	_, err = env.social.InvitePeer(ctx, alice.ID, InvitePeerRequest{Email: bob.Email})
	require.NoError(t, err)

	_, err = env.social.InvitePeer(ctx, alice.ID, InvitePeerRequest{Email: bob.Email})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists, "duplicate invite")

	// The reverse direction is the same relationship.
	_, err = env.social.InvitePeer(ctx, bob.ID, InvitePeerRequest{Email: alice.Email})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists, "reverse invite")
}

func TestSocialService_OnlyInviteeAccepts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.makeUser(t, "alice@example.com")
	bob := env.makeUser(t, "bob@example.com")
	carol := env.makeUser(t, "carol@example.com")

	rel, err := env.social.InvitePeer(ctx, alice.ID, InvitePeerRequest{Email: bob.Email})
	require.NoError(t, err)

	_, err = env.social.AcceptPeer(ctx, alice.ID, rel.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden, "inviter cannot accept")

	_, err = env.social.AcceptPeer(ctx, carol.ID, rel.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound, "stranger sees nothing")

	accepted, err := env.social.AcceptPeer(ctx, bob.ID, rel.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PeerStatusAccepted, accepted.Status)

	// Accepting again is a no-op.
	again, err := env.social.AcceptPeer(ctx, bob.ID, rel.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PeerStatusAccepted, again.Status)
}

func TestSocialService_OverlayVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, peer := pairPeers(t, env)

	_, err := env.tasks.Create(ctx, owner.ID, CreateTaskRequest{Kind: "fitness", Label: "Morning run"})
	require.NoError(t, err)
	peerTask, err := env.tasks.Create(ctx, peer.ID, CreateTaskRequest{Kind: "fitness", Label: "Yoga class"})
	require.NoError(t, err)
	// Non-fitness items never surface in the overlay.
	_, err = env.tasks.Create(ctx, peer.ID, CreateTaskRequest{Kind: "todo", Label: "Laundry"})
	require.NoError(t, err)

	overlay, err := env.social.VisibleFitnessActivities(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, overlay, 2)

	var ownEntry, peerEntry *domain.OverlayActivity
	for i := range overlay {
		if overlay[i].IsPeerActivity {
			peerEntry = &overlay[i]
		} else {
			ownEntry = &overlay[i]
		}
	}
	require.NotNil(t, ownEntry)
	require.NotNil(t, peerEntry)
	assert.Equal(t, "Morning run", ownEntry.Label)
	assert.Equal(t, "Yoga class", peerEntry.Label)
	assert.Equal(t, peerTask.ID, peerEntry.ID)
	assert.Equal(t, "buddy", peerEntry.PeerDisplayName)
	assert.Equal(t, 1, peerEntry.ParticipantCount, "owner counts as one")
}

func TestSocialService_OverlayNeedsBothPreferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, peer := pairPeers(t, env)

	_, err := env.tasks.Create(ctx, peer.ID, CreateTaskRequest{Kind: "fitness", Label: "Yoga class"})
	require.NoError(t, err)

	// Peer opts out: their activities disappear from the owner's overlay.
	_, err = env.social.SetSyncPreference(ctx, peer.ID, SetSyncPreferenceRequest{FeatureKey: "fitness", Enabled: false})
	require.NoError(t, err)

	overlay, err := env.social.VisibleFitnessActivities(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, overlay)

	// Owner opting out also blocks, even with the peer opted back in.
	_, err = env.social.SetSyncPreference(ctx, peer.ID, SetSyncPreferenceRequest{FeatureKey: "fitness", Enabled: true})
	require.NoError(t, err)
	_, err = env.social.SetSyncPreference(ctx, owner.ID, SetSyncPreferenceRequest{FeatureKey: "fitness", Enabled: false})
	require.NoError(t, err)

	overlay, err = env.social.VisibleFitnessActivities(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, overlay)
}

func TestSocialService_JoinLeaveFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, peer := pairPeers(t, env)

	activity, err := env.tasks.Create(ctx, owner.ID, CreateTaskRequest{Kind: "fitness", Label: "Park run"})
	require.NoError(t, err)

	_, err = env.social.JoinActivity(ctx, owner.ID, activity.ID, JoinActivityRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrValidation, "owner cannot join own activity")

	joined, err := env.social.JoinActivity(ctx, peer.ID, activity.ID, JoinActivityRequest{Note: "see you there"})
	require.NoError(t, err)
	assert.Equal(t, domain.ParticipantJoined, joined.Status)

	_, err = env.social.JoinActivity(ctx, peer.ID, activity.ID, JoinActivityRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrConflict, "double join")

	// The peer's overlay shows the activity with their participation and
	// a count of owner + one participant.
	overlay, err := env.social.VisibleFitnessActivities(ctx, peer.ID)
	require.NoError(t, err)
	require.Len(t, overlay, 1)
	assert.Equal(t, 2, overlay[0].ParticipantCount)
	require.NotNil(t, overlay[0].Participation)
	assert.Equal(t, "see you there", overlay[0].Participation.Note)

	require.NoError(t, env.social.LeaveActivity(ctx, peer.ID, activity.ID))
	err = env.social.LeaveActivity(ctx, peer.ID, activity.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound, "leave twice")
}

func TestSocialService_JoinRequiresVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.makeUser(t, "solo@example.com")
	stranger := env.makeUser(t, "nosy@example.com")

	activity, err := env.tasks.Create(ctx, owner.ID, CreateTaskRequest{Kind: "fitness", Label: "Private ride"})
	require.NoError(t, err)

	_, err = env.social.JoinActivity(ctx, stranger.ID, activity.ID, JoinActivityRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound, "no relationship, reads as missing")

	// Pending relationship is not enough.
	rel, err := env.social.InvitePeer(ctx, stranger.ID, InvitePeerRequest{Email: owner.Email})
	require.NoError(t, err)
	_, err = env.social.JoinActivity(ctx, stranger.ID, activity.ID, JoinActivityRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Accepted but without preferences is still not enough.
	_, err = env.social.AcceptPeer(ctx, owner.ID, rel.ID)
	require.NoError(t, err)
	_, err = env.social.JoinActivity(ctx, stranger.ID, activity.ID, JoinActivityRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSocialService_RemovePeerHidesActivities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, peer := pairPeers(t, env)

	_, err := env.tasks.Create(ctx, peer.ID, CreateTaskRequest{Kind: "fitness", Label: "Yoga class"})
	require.NoError(t, err)

	views, err := env.social.ListPeers(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Inviter)
	assert.Equal(t, "buddy", views[0].PeerDisplayName)

	require.NoError(t, env.social.RemovePeer(ctx, peer.ID, views[0].ID))

	overlay, err := env.social.VisibleFitnessActivities(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, overlay)
}
