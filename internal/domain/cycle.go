package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// FlowIntensity describes the recorded flow of a cycle entry.
type FlowIntensity string

const (
	FlowLight  FlowIntensity = "light"
	FlowMedium FlowIntensity = "medium"
	FlowHeavy  FlowIntensity = "heavy"
)

// Valid checks if the intensity is a known value.
func (f FlowIntensity) Valid() bool {
	switch f {
	case FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

// CycleEntry records one menstrual cycle. Entries are append-only from the
// API: symptoms are never edited in place, only delete-and-recreate.
type CycleEntry struct {
	Record
	OwnerID   string        `json:"owner_id"`
	StartDate string        `json:"start_date"`         // YYYY-MM-DD
	EndDate   string        `json:"end_date,omitempty"` // YYYY-MM-DD
	Flow      FlowIntensity `json:"flow"`
	Symptoms  []string      `json:"symptoms,omitempty"`
	Notes     string        `json:"notes,omitempty"`
}

// SymptomLog records free-form symptoms and mood for a single day.
type SymptomLog struct {
	Record
	OwnerID  string   `json:"owner_id"`
	Date     string   `json:"date"` // YYYY-MM-DD
	Symptoms []string `json:"symptoms,omitempty"`
	Mood     string   `json:"mood,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// gestationDays is the fixed 40-week gestation assumption used for pregnancy
// progress. It is not adjustable per user.
const gestationDays = 280

// AverageCycleLength returns the mean gap in days between consecutive cycle
// start dates, rounded to the nearest integer. It requires at least two
// entries; ok is false otherwise. Entries with unparseable start dates are
// skipped.
func AverageCycleLength(entries []CycleEntry) (days int, ok bool) {
	starts := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		t, err := time.Parse(DateLayout, e.StartDate)
		if err != nil {
			continue
		}
		starts = append(starts, t)
	}
	if len(starts) < 2 {
		return 0, false
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	var total float64
	for i := 1; i < len(starts); i++ {
		total += starts[i].Sub(starts[i-1]).Hours() / 24
	}
	mean := total / float64(len(starts)-1)
	return int(math.Round(mean)), true
}

// PredictNextStart projects the next cycle start date: the most recent
// entry's start date plus the average cycle length. ok is false when no
// average can be computed.
func PredictNextStart(entries []CycleEntry) (date string, ok bool) {
	avg, ok := AverageCycleLength(entries)
	if !ok {
		return "", false
	}

	var latest time.Time
	for _, e := range entries {
		t, err := time.Parse(DateLayout, e.StartDate)
		if err != nil {
			continue
		}
		if t.After(latest) {
			latest = t
		}
	}
	return latest.AddDate(0, 0, avg).Format(DateLayout), true
}

// PregnancyProgressResult holds the derived progress values for a pregnancy.
type PregnancyProgressResult struct {
	DaysPregnant  int `json:"days_pregnant"`
	WeeksPregnant int `json:"weeks_pregnant"`
	Trimester     int `json:"trimester"`
}

// PregnancyProgress derives progress from the due date, assuming a 280-day
// gestation: daysPregnant = 280 - daysUntilDue, weeks = floor(days/7),
// trimester boundaries at 12 and 27 weeks. The result depends on "today", so
// callers must recompute per request rather than caching it.
func PregnancyProgress(dueDate string, today time.Time) (PregnancyProgressResult, error) {
	due, err := time.Parse(DateLayout, dueDate)
	if err != nil {
		return PregnancyProgressResult{}, fmt.Errorf("parse due date: %w", err)
	}

	day, err := time.Parse(DateLayout, today.Format(DateLayout))
	if err != nil {
		return PregnancyProgressResult{}, err
	}

	daysUntilDue := int(due.Sub(day).Hours() / 24)
	daysPregnant := gestationDays - daysUntilDue
	weeksPregnant := int(math.Floor(float64(daysPregnant) / 7))

	trimester := 3
	switch {
	case weeksPregnant <= 12:
		trimester = 1
	case weeksPregnant <= 27:
		trimester = 2
	}

	return PregnancyProgressResult{
		DaysPregnant:  daysPregnant,
		WeeksPregnant: weeksPregnant,
		Trimester:     trimester,
	}, nil
}
