package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/dayplanapp/dayplan-server/internal/errors"
)

func TestPlanningService_WeddingInfoUpsert(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "bride@example.com")

	_, err := env.planning.GetWeddingInfo(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	first, err := env.planning.SaveWeddingInfo(ctx, user.ID, SaveWeddingInfoRequest{
		PartnerName: "Sam",
		WeddingDate: "2027-06-12",
		Budget:      15000,
	})
	require.NoError(t, err)

	// Saving again overwrites fields but keeps the record's identity.
	second, err := env.planning.SaveWeddingInfo(ctx, user.ID, SaveWeddingInfoRequest{
		PartnerName: "Sam",
		WeddingDate: "2027-06-12",
		Venue:       "Old Mill",
		Budget:      18000,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Old Mill", second.Venue)
	assert.Equal(t, float64(18000), second.Budget)
}

func TestPlanningService_PregnancyProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "mum@example.com")

	_, err := env.planning.PregnancyProgress(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound, "no info saved yet")

	_, err = env.planning.SavePregnancyInfo(ctx, user.ID, SavePregnancyInfoRequest{DueDate: "2026-12-01"})
	require.NoError(t, err)

	// Pin "today" 140 days before the due date: 20 weeks, second trimester.
	orig := now
	now = func() time.Time {
		return time.Date(2026, 7, 14, 10, 0, 0, 0, time.UTC)
	}
	defer func() { now = orig }()

	progress, err := env.planning.PregnancyProgress(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 140, progress.DaysPregnant)
	assert.Equal(t, 20, progress.WeeksPregnant)
	assert.Equal(t, 2, progress.Trimester)
}

func TestPlanningService_GuestRSVP(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "host@example.com")

	guest, err := env.planning.CreateGuest(ctx, user.ID, CreateGuestRequest{
		Event: "wedding",
		Name:  "Uncle Pete",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", string(guest.Status))

	confirmed := "confirmed"
	updated, err := env.planning.UpdateGuest(ctx, user.ID, guest.ID, UpdateGuestRequest{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", string(updated.Status))

	bogus := "maybe"
	_, err = env.planning.UpdateGuest(ctx, user.ID, guest.ID, UpdateGuestRequest{Status: &bogus})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.planning.CreateGuest(ctx, user.ID, CreateGuestRequest{Event: "birthday", Name: "Nope"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestPlanningService_GuestListsScopedByEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "events@example.com")

	_, err := env.planning.CreateGuest(ctx, user.ID, CreateGuestRequest{Event: "wedding", Name: "Wedding guest"})
	require.NoError(t, err)
	_, err = env.planning.CreateGuest(ctx, user.ID, CreateGuestRequest{Event: "babyshower", Name: "Shower guest"})
	require.NoError(t, err)

	wedding, err := env.planning.ListGuests(ctx, user.ID, "wedding")
	require.NoError(t, err)
	require.Len(t, wedding, 1)
	assert.Equal(t, "Wedding guest", wedding[0].Name)

	shower, err := env.planning.ListGuests(ctx, user.ID, "babyshower")
	require.NoError(t, err)
	require.Len(t, shower, 1)
	assert.Equal(t, "Shower guest", shower[0].Name)
}

func TestPlanningService_VendorStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "vendors@example.com")

	vendor, err := env.planning.CreateVendor(ctx, user.ID, CreateVendorRequest{
		Name:     "Bloom & Co",
		Category: "florist",
		Quote:    800,
	})
	require.NoError(t, err)
	assert.Equal(t, "contacted", string(vendor.Status))

	booked := "booked"
	updated, err := env.planning.UpdateVendor(ctx, user.ID, vendor.ID, UpdateVendorRequest{Status: &booked})
	require.NoError(t, err)
	assert.Equal(t, "booked", string(updated.Status))

	bogus := "ghosted"
	_, err = env.planning.UpdateVendor(ctx, user.ID, vendor.ID, UpdateVendorRequest{Status: &bogus})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAppointmentService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "appts@example.com")

	appt, err := env.appts.CreateAppointment(ctx, user.ID, CreateAppointmentRequest{
		Title: "Dentist",
		Date:  "2026-09-10",
		Time:  "14:30",
	})
	require.NoError(t, err)

	done := true
	updated, err := env.appts.UpdateAppointment(ctx, user.ID, appt.ID, UpdateAppointmentRequest{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	stranger := env.makeUser(t, "apptstranger@example.com")
	err = env.appts.DeleteAppointment(ctx, stranger.ID, appt.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.NoError(t, env.appts.DeleteAppointment(ctx, user.ID, appt.ID))

	appts, err := env.appts.ListAppointments(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, appts)
}

func TestAppointmentService_WeddingTaskPriority(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "wedtasks@example.com")

	task, err := env.appts.CreateWeddingTask(ctx, user.ID, CreateWeddingTaskRequest{
		Title: "Book photographer",
		Date:  "2026-10-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "medium", string(task.Priority), "default priority")

	_, err = env.appts.CreateWeddingTask(ctx, user.ID, CreateWeddingTaskRequest{
		Title:    "Invalid",
		Date:     "2026-10-01",
		Priority: "urgent",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestQuickAddService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.makeUser(t, "quick@example.com")

	btn, err := env.quickadd.Create(ctx, user.ID, CreateQuickAddRequest{
		Name:     "Gym",
		Category: "fitness",
		Icon:     "dumbbell",
	})
	require.NoError(t, err)
	assert.True(t, btn.IsActive)

	_, err = env.quickadd.Create(ctx, user.ID, CreateQuickAddRequest{Name: "Bad", Category: "errands"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	inactive := false
	updated, err := env.quickadd.Update(ctx, user.ID, btn.ID, UpdateQuickAddRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	require.NoError(t, env.quickadd.Delete(ctx, user.ID, btn.ID))

	btns, err := env.quickadd.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, btns)
}
