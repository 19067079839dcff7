// Package store defines the persistence interface and its error taxonomy.
// Implementations live in subpackages (currently sqlite only).
package store

import (
	"context"

	"github.com/dayplanapp/dayplan-server/internal/domain"
)

// Store is the persistence interface the services depend on.
type Store interface {
	Close() error

	UserStore
	SessionStore
	TaskStore
	AppointmentStore
	PlanningStore
	CycleStore
	ChecklistStore
	QuickAddStore
	SocialStore
}

// UserStore manages user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// SessionStore manages refresh-token sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)
}

// TaskStore manages task items across all kinds, including subtasks.
type TaskStore interface {
	CreateTask(ctx context.Context, task *domain.TaskItem) error
	GetTask(ctx context.Context, id string) (*domain.TaskItem, error)
	UpdateTask(ctx context.Context, task *domain.TaskItem) error

	// DeleteTaskTree removes a top-level task and all its subtasks in one
	// transaction. Deleting a subtask directly goes through DeleteTask.
	DeleteTaskTree(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error

	// ListTasksForDate returns top-level tasks of one kind due on a date.
	ListTasksForDate(ctx context.Context, ownerID string, kind domain.TaskKind, date string) ([]*domain.TaskItem, error)
	// ListTasksByKind returns all top-level tasks of one kind for an owner.
	ListTasksByKind(ctx context.Context, ownerID string, kind domain.TaskKind) ([]*domain.TaskItem, error)
	ListSubtasks(ctx context.Context, parentID string) ([]*domain.TaskItem, error)
}

// AppointmentStore manages the three appointment-shaped entities.
type AppointmentStore interface {
	CreateAppointment(ctx context.Context, appt *domain.Appointment) error
	GetAppointment(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appt *domain.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	ListAppointments(ctx context.Context, ownerID string) ([]*domain.Appointment, error)
	ListAppointmentsForDate(ctx context.Context, ownerID, date string) ([]*domain.Appointment, error)

	CreatePregnancyAppointment(ctx context.Context, appt *domain.PregnancyAppointment) error
	GetPregnancyAppointment(ctx context.Context, id string) (*domain.PregnancyAppointment, error)
	UpdatePregnancyAppointment(ctx context.Context, appt *domain.PregnancyAppointment) error
	DeletePregnancyAppointment(ctx context.Context, id string) error
	ListPregnancyAppointments(ctx context.Context, ownerID string) ([]*domain.PregnancyAppointment, error)
	ListPregnancyAppointmentsForDate(ctx context.Context, ownerID, date string) ([]*domain.PregnancyAppointment, error)

	CreateWeddingTask(ctx context.Context, task *domain.WeddingTask) error
	GetWeddingTask(ctx context.Context, id string) (*domain.WeddingTask, error)
	UpdateWeddingTask(ctx context.Context, task *domain.WeddingTask) error
	DeleteWeddingTask(ctx context.Context, id string) error
	ListWeddingTasks(ctx context.Context, ownerID string) ([]*domain.WeddingTask, error)
	ListWeddingTasksForDate(ctx context.Context, ownerID, date string) ([]*domain.WeddingTask, error)
}

// PlanningStore manages the per-owner planning singletons plus guests and
// vendors. The singletons follow upsert semantics keyed on the owner.
type PlanningStore interface {
	GetWeddingInfo(ctx context.Context, ownerID string) (*domain.WeddingInfo, error)
	UpsertWeddingInfo(ctx context.Context, info *domain.WeddingInfo) error

	GetPregnancyInfo(ctx context.Context, ownerID string) (*domain.PregnancyInfo, error)
	UpsertPregnancyInfo(ctx context.Context, info *domain.PregnancyInfo) error

	GetBabyShowerInfo(ctx context.Context, ownerID string) (*domain.BabyShowerInfo, error)
	UpsertBabyShowerInfo(ctx context.Context, info *domain.BabyShowerInfo) error

	CreateGuest(ctx context.Context, guest *domain.Guest) error
	GetGuest(ctx context.Context, id string) (*domain.Guest, error)
	UpdateGuest(ctx context.Context, guest *domain.Guest) error
	DeleteGuest(ctx context.Context, id string) error
	ListGuests(ctx context.Context, ownerID string, event domain.GuestEvent) ([]*domain.Guest, error)

	CreateVendor(ctx context.Context, vendor *domain.Vendor) error
	GetVendor(ctx context.Context, id string) (*domain.Vendor, error)
	UpdateVendor(ctx context.Context, vendor *domain.Vendor) error
	DeleteVendor(ctx context.Context, id string) error
	ListVendors(ctx context.Context, ownerID string) ([]*domain.Vendor, error)
}

// CycleStore manages cycle entries and symptom logs.
type CycleStore interface {
	CreateCycleEntry(ctx context.Context, entry *domain.CycleEntry) error
	GetCycleEntry(ctx context.Context, id string) (*domain.CycleEntry, error)
	UpdateCycleEntry(ctx context.Context, entry *domain.CycleEntry) error
	DeleteCycleEntry(ctx context.Context, id string) error
	ListCycleEntries(ctx context.Context, ownerID string) ([]*domain.CycleEntry, error)
	ListCycleEntriesForDate(ctx context.Context, ownerID, date string) ([]*domain.CycleEntry, error)

	CreateSymptomLog(ctx context.Context, log *domain.SymptomLog) error
	GetSymptomLog(ctx context.Context, id string) (*domain.SymptomLog, error)
	DeleteSymptomLog(ctx context.Context, id string) error
	ListSymptomLogs(ctx context.Context, ownerID string) ([]*domain.SymptomLog, error)
}

// ChecklistStore manages checklist categories, items, and share tokens.
type ChecklistStore interface {
	CreateChecklistCategory(ctx context.Context, cat *domain.ChecklistCategory) error
	GetChecklistCategory(ctx context.Context, id string) (*domain.ChecklistCategory, error)
	UpdateChecklistCategory(ctx context.Context, cat *domain.ChecklistCategory) error
	ListChecklistCategories(ctx context.Context, ownerID string) ([]*domain.ChecklistCategory, error)

	// DeleteChecklistCategory removes a category and its items, refusing
	// with ErrLastCategory when it is the owner's only one. The count check
	// and the delete happen in the same transaction.
	DeleteChecklistCategory(ctx context.Context, id string) error

	// EnsureShareToken returns the category's share token, generating and
	// persisting the given candidate if none exists yet. Read and write
	// happen in one transaction so concurrent callers converge on a single
	// token.
	EnsureShareToken(ctx context.Context, categoryID, candidate string) (string, error)
	GetCategoryByShareToken(ctx context.Context, token string) (*domain.ChecklistCategory, error)
	RevokeShareToken(ctx context.Context, categoryID string) error

	CreateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error
	GetChecklistItem(ctx context.Context, id string) (*domain.ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error
	DeleteChecklistItem(ctx context.Context, id string) error
	ListChecklistItems(ctx context.Context, categoryID string) ([]*domain.ChecklistItem, error)
}

// QuickAddStore manages configurable quick-add buttons.
type QuickAddStore interface {
	CreateQuickAddButton(ctx context.Context, btn *domain.QuickAddButton) error
	GetQuickAddButton(ctx context.Context, id string) (*domain.QuickAddButton, error)
	UpdateQuickAddButton(ctx context.Context, btn *domain.QuickAddButton) error
	DeleteQuickAddButton(ctx context.Context, id string) error
	ListQuickAddButtons(ctx context.Context, ownerID string) ([]*domain.QuickAddButton, error)
}

// SocialStore manages peer relationships, sync preferences, and activity
// participation.
type SocialStore interface {
	CreatePeer(ctx context.Context, peer *domain.Peer) error
	GetPeer(ctx context.Context, id string) (*domain.Peer, error)
	// GetPeerBetween finds the relationship row linking two users in either
	// direction.
	GetPeerBetween(ctx context.Context, userA, userB string) (*domain.Peer, error)
	UpdatePeer(ctx context.Context, peer *domain.Peer) error
	DeletePeer(ctx context.Context, id string) error
	// ListPeersOf returns every relationship the user is on either side of.
	ListPeersOf(ctx context.Context, userID string) ([]*domain.Peer, error)

	GetSyncPreference(ctx context.Context, ownerID, featureKey string) (*domain.SyncPreference, error)
	UpsertSyncPreference(ctx context.Context, pref *domain.SyncPreference) error
	ListSyncPreferences(ctx context.Context, ownerID string) ([]*domain.SyncPreference, error)

	CreateParticipant(ctx context.Context, p *domain.ActivityParticipant) error
	GetParticipant(ctx context.Context, activityID, participantID string) (*domain.ActivityParticipant, error)
	DeleteParticipant(ctx context.Context, activityID, participantID string) error
	ListParticipants(ctx context.Context, activityID string) ([]*domain.ActivityParticipant, error)
	CountParticipants(ctx context.Context, activityID string) (int, error)
}
