package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

func makeTestSession(t *testing.T, s *Store, sessionID, userID, tokenHash string) *domain.Session {
	t.Helper()

	if _, err := s.GetUser(context.Background(), userID); errors.Is(err, store.ErrNotFound) {
		makeTestUser(t, s, userID)
	}

	now := time.Now()
	return &domain.Session{
		ID:               sessionID,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		UserAgent:        "DayPlan iOS/1.2",
		IPAddress:        "192.168.1.42",
		CreatedAt:        now,
		LastUsedAt:       now,
		ExpiresAt:        now.Add(24 * time.Hour),
	}
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess := makeTestSession(t, s, "sess-1", "user-1", "hash-1")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSessionByTokenHash(ctx, "hash-1")
	if err != nil {
		t.Fatalf("GetSessionByTokenHash: %v", err)
	}
	if got.ID != "sess-1" {
		t.Errorf("ID: got %q", got.ID)
	}
	if got.UserID != "user-1" {
		t.Errorf("UserID: got %q", got.UserID)
	}
	if got.UserAgent != sess.UserAgent {
		t.Errorf("UserAgent: got %q, want %q", got.UserAgent, sess.UserAgent)
	}
	if got.IPAddress != sess.IPAddress {
		t.Errorf("IPAddress: got %q, want %q", got.IPAddress, sess.IPAddress)
	}
	if got.ExpiresAt.Unix() != sess.ExpiresAt.Unix() {
		t.Errorf("ExpiresAt: got %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}
}

func TestCreateSessionDuplicateHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSession(ctx, makeTestSession(t, s, "sess-1", "user-1", "hash-1")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	err := s.CreateSession(ctx, makeTestSession(t, s, "sess-2", "user-1", "hash-1"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSession(ctx, makeTestSession(t, s, "sess-1", "user-1", "hash-1")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.DeleteSession(ctx, "sess-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSessionByTokenHash(ctx, "hash-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteUserSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, h := range []string{"h1", "h2"} {
		sess := makeTestSession(t, s, "sess-"+h, "user-1", h)
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession %d: %v", i, err)
		}
	}

	if err := s.DeleteUserSessions(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteUserSessions: %v", err)
	}
	for _, h := range []string{"h1", "h2"} {
		if _, err := s.GetSessionByTokenHash(ctx, h); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("session %s survived, err=%v", h, err)
		}
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	live := makeTestSession(t, s, "sess-live", "user-1", "hash-live")
	if err := s.CreateSession(ctx, live); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	expired := makeTestSession(t, s, "sess-old", "user-1", "hash-old")
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	if err := s.CreateSession(ctx, expired); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d sessions, want 1", n)
	}
	if _, err := s.GetSessionByTokenHash(ctx, "hash-live"); err != nil {
		t.Errorf("live session should survive: %v", err)
	}
}
