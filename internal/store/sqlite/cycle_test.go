package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

func TestCycleEntryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")

	entry := &domain.CycleEntry{
		OwnerID:   "user-1",
		StartDate: "2025-02-01",
		EndDate:   "2025-02-05",
		Flow:      domain.FlowHeavy,
		Symptoms:  []string{"cramps", "headache"},
		Notes:     "rough week",
	}
	entry.ID = "cycle-1"
	entry.InitTimestamps()
	if err := s.CreateCycleEntry(ctx, entry); err != nil {
		t.Fatalf("CreateCycleEntry: %v", err)
	}

	got, err := s.GetCycleEntry(ctx, "cycle-1")
	if err != nil {
		t.Fatalf("GetCycleEntry: %v", err)
	}
	if got.StartDate != "2025-02-01" || got.EndDate != "2025-02-05" {
		t.Errorf("dates: got %q..%q", got.StartDate, got.EndDate)
	}
	if got.Flow != domain.FlowHeavy {
		t.Errorf("Flow: got %q", got.Flow)
	}
	if len(got.Symptoms) != 2 || got.Symptoms[0] != "cramps" {
		t.Errorf("Symptoms: got %v", got.Symptoms)
	}
	if got.Notes != "rough week" {
		t.Errorf("Notes: got %q", got.Notes)
	}
}

func TestCycleEntryEmptySymptoms(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")

	entry := &domain.CycleEntry{OwnerID: "user-1", StartDate: "2025-02-01", Flow: domain.FlowLight}
	entry.ID = "cycle-1"
	entry.InitTimestamps()
	if err := s.CreateCycleEntry(ctx, entry); err != nil {
		t.Fatalf("CreateCycleEntry: %v", err)
	}

	got, err := s.GetCycleEntry(ctx, "cycle-1")
	if err != nil {
		t.Fatalf("GetCycleEntry: %v", err)
	}
	if len(got.Symptoms) != 0 {
		t.Errorf("Symptoms: got %v, want empty", got.Symptoms)
	}
}

func TestListCycleEntries_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")

	for i, start := range []string{"2025-01-01", "2025-02-01", "2024-12-01"} {
		entry := &domain.CycleEntry{OwnerID: "user-1", StartDate: start, Flow: domain.FlowMedium}
		entry.ID = "cycle-" + start
		entry.InitTimestamps()
		if err := s.CreateCycleEntry(ctx, entry); err != nil {
			t.Fatalf("CreateCycleEntry %d: %v", i, err)
		}
	}

	entries, err := s.ListCycleEntries(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListCycleEntries: %v", err)
	}
	want := []string{"2025-02-01", "2025-01-01", "2024-12-01"}
	for i, w := range want {
		if entries[i].StartDate != w {
			t.Errorf("position %d: got %q, want %q", i, entries[i].StartDate, w)
		}
	}
}

func TestSymptomLogRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "user-1")

	log := &domain.SymptomLog{
		OwnerID:  "user-1",
		Date:     "2025-02-10",
		Symptoms: []string{"fatigue"},
		Mood:     "tired",
	}
	log.ID = "log-1"
	log.InitTimestamps()
	if err := s.CreateSymptomLog(ctx, log); err != nil {
		t.Fatalf("CreateSymptomLog: %v", err)
	}

	got, err := s.GetSymptomLog(ctx, "log-1")
	if err != nil {
		t.Fatalf("GetSymptomLog: %v", err)
	}
	if got.Mood != "tired" || len(got.Symptoms) != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if err := s.DeleteSymptomLog(ctx, "log-1"); err != nil {
		t.Fatalf("DeleteSymptomLog: %v", err)
	}
	if _, err := s.GetSymptomLog(ctx, "log-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
