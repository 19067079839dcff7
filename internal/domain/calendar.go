package domain

import (
	"sort"
	"strings"
)

// CalendarKind tags a day-view entry with the entity kind it came from.
type CalendarKind string

const (
	CalendarKindTodo                 CalendarKind = "todo"
	CalendarKindWork                 CalendarKind = "work"
	CalendarKindSelfDev              CalendarKind = "selfdev"
	CalendarKindLeisure              CalendarKind = "leisure"
	CalendarKindFitness              CalendarKind = "fitness"
	CalendarKindAppointment          CalendarKind = "appointment"
	CalendarKindPregnancyAppointment CalendarKind = "pregnancy_appointment"
	CalendarKindWeddingTask          CalendarKind = "wedding_task"
	CalendarKindCycleEntry           CalendarKind = "cycle_entry"
)

// CalendarKindForTask maps a task kind onto its calendar tag.
func CalendarKindForTask(k TaskKind) CalendarKind {
	return CalendarKind(k)
}

// CalendarItem is one entry in a merged day view: a kind-tagged union over
// every entity type that can land on a calendar day.
type CalendarItem struct {
	ID        string       `json:"id"`
	Kind      CalendarKind `json:"kind"`
	Title     string       `json:"title"`
	Time      string       `json:"time,omitempty"` // HH:MM, empty when untimed
	Completed *bool        `json:"completed,omitempty"`
	Subtasks  []TaskItem   `json:"subtasks,omitempty"`
}

// SortCalendarItems orders a merged day view in place: when both items carry
// a time, earlier first (title breaks ties); otherwise alphabetical by
// title. Untimed entries therefore interleave with timed ones by title
// alone, which is a weak order but matches how the planner renders a day.
// The comparator is not transitive across timed/untimed mixes, so two timed
// items can land out of time order when an untimed title sorts between
// them; callers accept that in exchange for the interleaved rendering.
// The sort is stable so equal items keep their per-kind fetch order.
func SortCalendarItems(items []CalendarItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Time != "" && b.Time != "" {
			if a.Time != b.Time {
				return a.Time < b.Time
			}
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}
