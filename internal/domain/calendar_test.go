package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortCalendarItems_TimedBeforeByTime(t *testing.T) {
	items := []CalendarItem{
		{ID: "b", Kind: CalendarKindAppointment, Title: "Dentist", Time: "14:00"},
		{ID: "a", Kind: CalendarKindAppointment, Title: "Standup", Time: "09:30"},
	}

	SortCalendarItems(items)

	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}

func TestSortCalendarItems_UntimedByTitle(t *testing.T) {
	items := []CalendarItem{
		{ID: "1", Kind: CalendarKindTodo, Title: "water plants"},
		{ID: "2", Kind: CalendarKindWork, Title: "Budget review"},
		{ID: "3", Kind: CalendarKindTodo, Title: "buy milk"},
	}

	SortCalendarItems(items)

	assert.Equal(t, []string{"2", "3", "1"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestSortCalendarItems_MixedFallsBackToTitle(t *testing.T) {
	// An untimed item compares by title even against a timed one.
	items := []CalendarItem{
		{ID: "timed", Title: "Zumba", Time: "08:00"},
		{ID: "untimed", Title: "Answer emails"},
	}

	SortCalendarItems(items)

	assert.Equal(t, "untimed", items[0].ID)
}

func TestSortCalendarItems_Deterministic(t *testing.T) {
	mk := func() []CalendarItem {
		return []CalendarItem{
			{ID: "1", Title: "Yoga", Time: "07:00"},
			{ID: "2", Title: "yoga", Time: "07:00"},
			{ID: "3", Title: "Lunch walk"},
		}
	}

	a := mk()
	b := mk()
	SortCalendarItems(a)
	SortCalendarItems(b)

	assert.Equal(t, a, b)
}

func TestTaskItemToggleCompleted(t *testing.T) {
	item := &TaskItem{Kind: TaskKindTodo, Label: "Buy milk"}

	item.ToggleCompleted()
	assert.True(t, item.Completed)

	item.ToggleCompleted()
	assert.False(t, item.Completed)
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-03-01"))
	assert.False(t, ValidDate("2025-3-1"))
	assert.False(t, ValidDate("03/01/2025"))
	assert.False(t, ValidDate(""))
}
