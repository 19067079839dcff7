package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dayplanapp/dayplan-server/internal/auth"
	"github.com/dayplanapp/dayplan-server/internal/domain"
	"github.com/dayplanapp/dayplan-server/internal/id"
	"github.com/dayplanapp/dayplan-server/internal/store/sqlite"
)

// testKeyHex is a fixed PASETO key for tests. Never use outside tests.
const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testEnv wires every service against a real sqlite store in a temp dir.
type testEnv struct {
	store     *sqlite.Store
	auth      *AuthService
	sessions  *SessionService
	tasks     *TaskService
	dayview   *DayViewService
	cycle     *CycleService
	planning  *PlanningService
	appts     *AppointmentService
	checklist *ChecklistService
	social    *SocialService
	quickadd  *QuickAddService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	sessions := NewSessionService(st, tokens, logger)

	return &testEnv{
		store:     st,
		auth:      NewAuthService(st, tokens, sessions, logger),
		sessions:  sessions,
		tasks:     NewTaskService(st, logger),
		dayview:   NewDayViewService(st, logger),
		cycle:     NewCycleService(st, logger),
		planning:  NewPlanningService(st, logger),
		appts:     NewAppointmentService(st, logger),
		checklist: NewChecklistService(st, logger),
		social:    NewSocialService(st, logger),
		quickadd:  NewQuickAddService(st, logger),
	}
}

// makeUser persists a user directly, bypassing registration. Tests that need
// the registration side effects (starter category, session) go through
// env.auth.Register instead.
func (e *testEnv) makeUser(t *testing.T, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:        email,
		PasswordHash: "unused",
		DisplayName:  strings.SplitN(email, "@", 2)[0],
	}
	user.ID = id.MustGenerate("user")
	user.InitTimestamps()
	require.NoError(t, e.store.CreateUser(context.Background(), user))
	return user
}
