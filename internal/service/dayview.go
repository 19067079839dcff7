package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dayplanapp/dayplan-server/internal/domain"
	domainerrors "github.com/dayplanapp/dayplan-server/internal/errors"
	"github.com/dayplanapp/dayplan-server/internal/store"
)

// DayViewService assembles the merged calendar view for a single date.
type DayViewService struct {
	store  store.Store
	logger *slog.Logger
}

// NewDayViewService creates a new day view service.
func NewDayViewService(st store.Store, logger *slog.Logger) *DayViewService {
	return &DayViewService{store: st, logger: logger}
}

// DayView is the merged, sorted view of everything on one calendar day.
type DayView struct {
	Date  string                `json:"date"`
	Items []domain.CalendarItem `json:"items"`
}

// taskKinds is the fan-out slot order for the five task kinds. The final
// sort is stable, so items it considers equal keep this order.
var taskKinds = []domain.TaskKind{
	domain.TaskKindTodo,
	domain.TaskKindWork,
	domain.TaskKindSelfDev,
	domain.TaskKindLeisure,
	domain.TaskKindFitness,
}

// Build fetches every entity kind for the date concurrently, merges them
// into calendar items, and sorts. No snapshot isolation across kinds: a
// write racing the reads may appear in some kinds and not others, which is
// acceptable for a view that is re-fetched on every navigation.
func (s *DayViewService) Build(ctx context.Context, ownerID, date string) (*DayView, error) {
	if !domain.ValidDate(date) {
		return nil, domainerrors.Validation("date must be YYYY-MM-DD")
	}

	fetches := make([]func() ([]domain.CalendarItem, error), 0, len(taskKinds)+4)
	for _, kind := range taskKinds {
		kind := kind
		fetches = append(fetches, func() ([]domain.CalendarItem, error) {
			return s.taskItems(ctx, ownerID, kind, date)
		})
	}
	fetches = append(fetches,
		func() ([]domain.CalendarItem, error) { return s.appointmentItems(ctx, ownerID, date) },
		func() ([]domain.CalendarItem, error) { return s.pregnancyAppointmentItems(ctx, ownerID, date) },
		func() ([]domain.CalendarItem, error) { return s.weddingTaskItems(ctx, ownerID, date) },
		func() ([]domain.CalendarItem, error) { return s.cycleItems(ctx, ownerID, date) },
	)

	// Each fetch writes its own slot, so the merge order below is fixed no
	// matter which goroutine finishes first. Items the sort considers equal
	// therefore always land in slot order.
	results := make([][]domain.CalendarItem, len(fetches))
	errs := make([]error, len(fetches))

	var wg sync.WaitGroup
	for i, fetch := range fetches {
		i, fetch := i, fetch
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = fetch()
		}()
	}
	wg.Wait()

	var items []domain.CalendarItem
	for i, got := range results {
		if errs[i] != nil {
			return nil, fmt.Errorf("build day view: %w", errs[i])
		}
		items = append(items, got...)
	}

	domain.SortCalendarItems(items)

	return &DayView{Date: date, Items: items}, nil
}

func (s *DayViewService) taskItems(ctx context.Context, ownerID string, kind domain.TaskKind, date string) ([]domain.CalendarItem, error) {
	tasks, err := s.store.ListTasksForDate(ctx, ownerID, kind, date)
	if err != nil {
		return nil, fmt.Errorf("list %s tasks: %w", kind, err)
	}

	items := make([]domain.CalendarItem, 0, len(tasks))
	for _, task := range tasks {
		subs, err := s.store.ListSubtasks(ctx, task.ID)
		if err != nil {
			return nil, fmt.Errorf("list subtasks: %w", err)
		}
		subtasks := make([]domain.TaskItem, 0, len(subs))
		for _, sub := range subs {
			subtasks = append(subtasks, *sub)
		}

		completed := task.Completed
		items = append(items, domain.CalendarItem{
			ID:        task.ID,
			Kind:      domain.CalendarKindForTask(kind),
			Title:     task.Label,
			Time:      task.DueTime,
			Completed: &completed,
			Subtasks:  subtasks,
		})
	}
	return items, nil
}

func (s *DayViewService) appointmentItems(ctx context.Context, ownerID, date string) ([]domain.CalendarItem, error) {
	appts, err := s.store.ListAppointmentsForDate(ctx, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	items := make([]domain.CalendarItem, 0, len(appts))
	for _, a := range appts {
		completed := a.Completed
		items = append(items, domain.CalendarItem{
			ID:        a.ID,
			Kind:      domain.CalendarKindAppointment,
			Title:     a.Title,
			Time:      a.Time,
			Completed: &completed,
		})
	}
	return items, nil
}

func (s *DayViewService) pregnancyAppointmentItems(ctx context.Context, ownerID, date string) ([]domain.CalendarItem, error) {
	appts, err := s.store.ListPregnancyAppointmentsForDate(ctx, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("list pregnancy appointments: %w", err)
	}

	items := make([]domain.CalendarItem, 0, len(appts))
	for _, a := range appts {
		completed := a.Completed
		items = append(items, domain.CalendarItem{
			ID:        a.ID,
			Kind:      domain.CalendarKindPregnancyAppointment,
			Title:     a.Title,
			Time:      a.Time,
			Completed: &completed,
		})
	}
	return items, nil
}

func (s *DayViewService) weddingTaskItems(ctx context.Context, ownerID, date string) ([]domain.CalendarItem, error) {
	tasks, err := s.store.ListWeddingTasksForDate(ctx, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("list wedding tasks: %w", err)
	}

	items := make([]domain.CalendarItem, 0, len(tasks))
	for _, wt := range tasks {
		completed := wt.Completed
		items = append(items, domain.CalendarItem{
			ID:        wt.ID,
			Kind:      domain.CalendarKindWeddingTask,
			Title:     wt.Title,
			Time:      wt.Time,
			Completed: &completed,
		})
	}
	return items, nil
}

func (s *DayViewService) cycleItems(ctx context.Context, ownerID, date string) ([]domain.CalendarItem, error) {
	entries, err := s.store.ListCycleEntriesForDate(ctx, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("list cycle entries: %w", err)
	}

	items := make([]domain.CalendarItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.CalendarItem{
			ID:    e.ID,
			Kind:  domain.CalendarKindCycleEntry,
			Title: "Cycle start",
		})
	}
	return items, nil
}
