package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

func makePeer(t *testing.T, s *Store, id, ownerID, peerID string, status domain.PeerStatus) *domain.Peer {
	t.Helper()
	p := &domain.Peer{OwnerID: ownerID, PeerID: peerID, Status: status}
	p.ID = id
	p.InitTimestamps()
	if err := s.CreatePeer(context.Background(), p); err != nil {
		t.Fatalf("CreatePeer(%s): %v", id, err)
	}
	return p
}

func TestPeerPairUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "alice")
	makeTestUser(t, s, "bob")

	makePeer(t, s, "peer-1", "alice", "bob", domain.PeerStatusPending)

	dup := &domain.Peer{OwnerID: "alice", PeerID: "bob", Status: domain.PeerStatusPending}
	dup.ID = "peer-2"
	dup.InitTimestamps()
	err := s.CreatePeer(ctx, dup)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetPeerBetween_EitherDirection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "alice")
	makeTestUser(t, s, "bob")
	makePeer(t, s, "peer-1", "alice", "bob", domain.PeerStatusAccepted)

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		got, err := s.GetPeerBetween(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("GetPeerBetween(%v): %v", pair, err)
		}
		if got.ID != "peer-1" {
			t.Errorf("GetPeerBetween(%v): got %q", pair, got.ID)
		}
	}
}

func TestListPeersOf_BothSides(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "alice")
	makeTestUser(t, s, "bob")
	makeTestUser(t, s, "carol")

	makePeer(t, s, "peer-1", "alice", "bob", domain.PeerStatusAccepted)
	makePeer(t, s, "peer-2", "carol", "alice", domain.PeerStatusPending)

	peers, err := s.ListPeersOf(ctx, "alice")
	if err != nil {
		t.Fatalf("ListPeersOf: %v", err)
	}
	if len(peers) != 2 {
		t.Fatalf("got %d peers, want 2", len(peers))
	}
}

func TestUpsertSyncPreference(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "alice")

	pref := &domain.SyncPreference{OwnerID: "alice", FeatureKey: domain.FeatureKeyFitness, Enabled: true}
	pref.ID = "pref-1"
	pref.InitTimestamps()
	if err := s.UpsertSyncPreference(ctx, pref); err != nil {
		t.Fatalf("UpsertSyncPreference: %v", err)
	}

	// Second upsert flips the flag without creating a new row.
	pref2 := &domain.SyncPreference{OwnerID: "alice", FeatureKey: domain.FeatureKeyFitness, Enabled: false}
	pref2.ID = "pref-2"
	pref2.InitTimestamps()
	if err := s.UpsertSyncPreference(ctx, pref2); err != nil {
		t.Fatalf("UpsertSyncPreference (second): %v", err)
	}

	got, err := s.GetSyncPreference(ctx, "alice", domain.FeatureKeyFitness)
	if err != nil {
		t.Fatalf("GetSyncPreference: %v", err)
	}
	if got.Enabled {
		t.Error("expected Enabled=false after second upsert")
	}
	if got.ID != "pref-1" {
		t.Errorf("row ID changed on upsert: got %q", got.ID)
	}
}

func TestCreateParticipant_DoubleJoinFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "alice")
	makeTestUser(t, s, "bob")

	activity := makeTask("act-1", "alice", domain.TaskKindFitness, "Morning run", "2025-03-01", nil)
	if err := s.CreateTask(ctx, activity); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	join := func(id string) error {
		p := &domain.ActivityParticipant{
			ActivityID:    "act-1",
			ActivityKind:  domain.TaskKindFitness,
			ParticipantID: "bob",
			Status:        domain.ParticipantJoined,
		}
		p.ID = id
		p.InitTimestamps()
		return s.CreateParticipant(ctx, p)
	}

	if err := join("part-1"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := join("part-2"); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("second join: expected ErrAlreadyExists, got %v", err)
	}

	n, err := s.CountParticipants(ctx, "act-1")
	if err != nil {
		t.Fatalf("CountParticipants: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d participants, want 1", n)
	}
}

func TestDeleteParticipant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "alice")
	makeTestUser(t, s, "bob")

	if err := s.CreateTask(ctx, makeTask("act-1", "alice", domain.TaskKindFitness, "Yoga", "2025-03-01", nil)); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	p := &domain.ActivityParticipant{
		ActivityID:    "act-1",
		ActivityKind:  domain.TaskKindFitness,
		ParticipantID: "bob",
		Status:        domain.ParticipantMaybe,
		Note:          "depends on work",
	}
	p.ID = "part-1"
	p.InitTimestamps()
	if err := s.CreateParticipant(ctx, p); err != nil {
		t.Fatalf("CreateParticipant: %v", err)
	}

	got, err := s.GetParticipant(ctx, "act-1", "bob")
	if err != nil {
		t.Fatalf("GetParticipant: %v", err)
	}
	if got.Status != domain.ParticipantMaybe || got.Note != "depends on work" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if err := s.DeleteParticipant(ctx, "act-1", "bob"); err != nil {
		t.Fatalf("DeleteParticipant: %v", err)
	}
	if _, err := s.GetParticipant(ctx, "act-1", "bob"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestParticipantsGoneWithActivity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "alice")
	makeTestUser(t, s, "bob")

	if err := s.CreateTask(ctx, makeTask("act-1", "alice", domain.TaskKindFitness, "Hike", "2025-03-01", nil)); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	p := &domain.ActivityParticipant{
		ActivityID:    "act-1",
		ActivityKind:  domain.TaskKindFitness,
		ParticipantID: "bob",
		Status:        domain.ParticipantJoined,
	}
	p.ID = "part-1"
	p.InitTimestamps()
	if err := s.CreateParticipant(ctx, p); err != nil {
		t.Fatalf("CreateParticipant: %v", err)
	}

	if err := s.DeleteTaskTree(ctx, "act-1"); err != nil {
		t.Fatalf("DeleteTaskTree: %v", err)
	}
	if _, err := s.GetParticipant(ctx, "act-1", "bob"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("participant survived activity delete: %v", err)
	}
}
