package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(start string) CycleEntry {
	return CycleEntry{StartDate: start, Flow: FlowMedium}
}

func TestAverageCycleLength_TwoEntries(t *testing.T) {
	entries := []CycleEntry{entry("2024-01-01"), entry("2024-01-29")}

	days, ok := AverageCycleLength(entries)
	require.True(t, ok)
	assert.Equal(t, 28, days)
}

func TestAverageCycleLength_UnsortedInput(t *testing.T) {
	// Order of entries must not matter; deltas are taken after sorting.
	entries := []CycleEntry{entry("2024-03-01"), entry("2024-01-01"), entry("2024-01-30")}

	days, ok := AverageCycleLength(entries)
	require.True(t, ok)
	// Deltas: 29 and 31, mean 30.
	assert.Equal(t, 30, days)
}

func TestAverageCycleLength_RoundsToNearest(t *testing.T) {
	// Deltas: 28 and 29, mean 28.5, rounds to 29.
	entries := []CycleEntry{entry("2024-01-01"), entry("2024-01-29"), entry("2024-02-27")}

	days, ok := AverageCycleLength(entries)
	require.True(t, ok)
	assert.Equal(t, 29, days)
}

func TestAverageCycleLength_RequiresTwoEntries(t *testing.T) {
	_, ok := AverageCycleLength(nil)
	assert.False(t, ok)

	_, ok = AverageCycleLength([]CycleEntry{entry("2024-01-01")})
	assert.False(t, ok)
}

func TestAverageCycleLength_SkipsBadDates(t *testing.T) {
	entries := []CycleEntry{entry("2024-01-01"), entry("not-a-date")}

	_, ok := AverageCycleLength(entries)
	assert.False(t, ok)
}

func TestPredictNextStart(t *testing.T) {
	entries := []CycleEntry{entry("2024-01-01"), entry("2024-01-29")}

	date, ok := PredictNextStart(entries)
	require.True(t, ok)
	assert.Equal(t, "2024-02-26", date)
}

func TestPredictNextStart_NoAverage(t *testing.T) {
	_, ok := PredictNextStart([]CycleEntry{entry("2024-01-01")})
	assert.False(t, ok)
}

func TestPregnancyProgress_DueIn280Days(t *testing.T) {
	today := time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)
	due := today.AddDate(0, 0, 280).Format(DateLayout)

	got, err := PregnancyProgress(due, today)
	require.NoError(t, err)
	assert.Equal(t, PregnancyProgressResult{DaysPregnant: 0, WeeksPregnant: 0, Trimester: 1}, got)
}

func TestPregnancyProgress_SecondTrimester(t *testing.T) {
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	due := today.AddDate(0, 0, 140).Format(DateLayout)

	got, err := PregnancyProgress(due, today)
	require.NoError(t, err)
	assert.Equal(t, PregnancyProgressResult{DaysPregnant: 140, WeeksPregnant: 20, Trimester: 2}, got)
}

func TestPregnancyProgress_ThirdTrimester(t *testing.T) {
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	due := today.AddDate(0, 0, 14).Format(DateLayout) // 38 weeks in

	got, err := PregnancyProgress(due, today)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Trimester)
	assert.Equal(t, 38, got.WeeksPregnant)
}

func TestPregnancyProgress_BadDate(t *testing.T) {
	_, err := PregnancyProgress("soon", time.Now())
	assert.Error(t, err)
}
