package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	domainerrors "github.com/dayplanapp/dayplan-server/internal/errors"
	"github.com/dayplanapp/dayplan-server/internal/id"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

// CycleService manages cycle entries and symptom logs. Entries are
// append-only from the API: symptoms are set at creation and never patched.
type CycleService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCycleService creates a new cycle tracking service.
func NewCycleService(st store.Store, logger *slog.Logger) *CycleService {
	return &CycleService{store: st, logger: logger}
}

// CreateCycleEntryRequest contains the data for a new cycle entry.
type CreateCycleEntryRequest struct {
	StartDate string   `json:"start_date" validate:"required"`
	EndDate   string   `json:"end_date,omitempty"`
	Flow      string   `json:"flow" validate:"required,oneof=light medium heavy"`
	Symptoms  []string `json:"symptoms,omitempty"`
	Notes     string   `json:"notes,omitempty" validate:"max=2000"`
}

// CreateSymptomLogRequest contains the data for a new symptom log.
type CreateSymptomLogRequest struct {
	Date     string   `json:"date" validate:"required"`
	Symptoms []string `json:"symptoms,omitempty"`
	Mood     string   `json:"mood,omitempty" validate:"max=100"`
	Notes    string   `json:"notes,omitempty" validate:"max=2000"`
}

// CycleSummary carries the projection values derived from an owner's entries.
// It is computed fresh on every call and never cached.
type CycleSummary struct {
	EntryCount         int    `json:"entry_count"`
	AverageCycleLength int    `json:"average_cycle_length,omitempty"`
	PredictedNextStart string `json:"predicted_next_start,omitempty"`
}

// CreateEntry records a new cycle entry.
func (s *CycleService) CreateEntry(ctx context.Context, ownerID string, req CreateCycleEntryRequest) (*domain.CycleEntry, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if !domain.ValidDate(req.StartDate) {
		return nil, domainerrors.Validation("start_date must be YYYY-MM-DD")
	}
	if req.EndDate != "" && !domain.ValidDate(req.EndDate) {
		return nil, domainerrors.Validation("end_date must be YYYY-MM-DD")
	}

	entryID, err := id.Generate("cycle")
	if err != nil {
		return nil, fmt.Errorf("generate entry ID: %w", err)
	}

	entry := &domain.CycleEntry{
		OwnerID:   ownerID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Flow:      domain.FlowIntensity(req.Flow),
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
	}
	entry.ID = entryID
	entry.InitTimestamps()

	if err := s.store.CreateCycleEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("create cycle entry: %w", err)
	}
	return entry, nil
}

// CloseEntry sets the end date on an open entry. This is the only edit an
// entry supports; everything else is delete-and-recreate.
func (s *CycleService) CloseEntry(ctx context.Context, ownerID, entryID, endDate string) (*domain.CycleEntry, error) {
	if !domain.ValidDate(endDate) {
		return nil, domainerrors.Validation("end_date must be YYYY-MM-DD")
	}

	entry, err := s.getOwnedEntry(ctx, ownerID, entryID)
	if err != nil {
		return nil, err
	}

	entry.EndDate = endDate
	entry.Touch()
	if err := s.store.UpdateCycleEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("update cycle entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns an owner's cycle entries, newest first.
func (s *CycleService) ListEntries(ctx context.Context, ownerID string) ([]*domain.CycleEntry, error) {
	entries, err := s.store.ListCycleEntries(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cycle entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes a cycle entry.
func (s *CycleService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	if _, err := s.getOwnedEntry(ctx, ownerID, entryID); err != nil {
		return err
	}
	if err := s.store.DeleteCycleEntry(ctx, entryID); err != nil {
		return fmt.Errorf("delete cycle entry: %w", err)
	}
	return nil
}

// Summary computes the average cycle length and projected next start from the
// owner's entries. Owners with fewer than two entries get a count-only summary.
func (s *CycleService) Summary(ctx context.Context, ownerID string) (*CycleSummary, error) {
	ptrs, err := s.store.ListCycleEntries(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cycle entries: %w", err)
	}

	entries := make([]domain.CycleEntry, 0, len(ptrs))
	for _, e := range ptrs {
		entries = append(entries, *e)
	}

	summary := &CycleSummary{EntryCount: len(entries)}
	if avg, ok := domain.AverageCycleLength(entries); ok {
		summary.AverageCycleLength = avg
	}
	if next, ok := domain.PredictNextStart(entries); ok {
		summary.PredictedNextStart = next
	}
	return summary, nil
}

// CreateSymptomLog records symptoms and mood for one day.
func (s *CycleService) CreateSymptomLog(ctx context.Context, ownerID string, req CreateSymptomLogRequest) (*domain.SymptomLog, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if !domain.ValidDate(req.Date) {
		return nil, domainerrors.Validation("date must be YYYY-MM-DD")
	}

	logID, err := id.Generate("symptom")
	if err != nil {
		return nil, fmt.Errorf("generate log ID: %w", err)
	}

	log := &domain.SymptomLog{
		OwnerID:  ownerID,
		Date:     req.Date,
		Symptoms: req.Symptoms,
		Mood:     req.Mood,
		Notes:    req.Notes,
	}
	log.ID = logID
	log.InitTimestamps()

	if err := s.store.CreateSymptomLog(ctx, log); err != nil {
		return nil, fmt.Errorf("create symptom log: %w", err)
	}
	return log, nil
}

// ListSymptomLogs returns an owner's symptom logs.
func (s *CycleService) ListSymptomLogs(ctx context.Context, ownerID string) ([]*domain.SymptomLog, error) {
	logs, err := s.store.ListSymptomLogs(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list symptom logs: %w", err)
	}
	return logs, nil
}

// DeleteSymptomLog removes a symptom log.
func (s *CycleService) DeleteSymptomLog(ctx context.Context, ownerID, logID string) error {
	log, err := s.store.GetSymptomLog(ctx, logID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("symptom log not found")
		}
		return err
	}
	if log.OwnerID != ownerID {
		return domainerrors.NotFound("symptom log not found")
	}
	if err := s.store.DeleteSymptomLog(ctx, logID); err != nil {
		return fmt.Errorf("delete symptom log: %w", err)
	}
	return nil
}

func (s *CycleService) getOwnedEntry(ctx context.Context, ownerID, entryID string) (*domain.CycleEntry, error) {
	entry, err := s.store.GetCycleEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("cycle entry not found")
		}
		return nil, err
	}
	if entry.OwnerID != ownerID {
		return nil, domainerrors.NotFound("cycle entry not found")
	}
	return entry, nil
}

// now is injectable for tests of time-dependent projections.
var now = time.Now
