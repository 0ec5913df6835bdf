package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chupohan/brigade-duty/pkg/core/civiltime"
	"github.com/chupohan/brigade-duty/pkg/db"
	"github.com/chupohan/brigade-duty/pkg/memstore"
)

func testClock(t *testing.T) *civiltime.Clock {
	t.Helper()
	clock, err := civiltime.NewClock(civiltime.DefaultTimezone)
	require.NoError(t, err)
	return clock
}

// taipei builds an instant at the given civil wall-clock time in May 2024.
func taipei(t *testing.T, clock *civiltime.Clock, day, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, 5, day, hour, minute, 0, 0, clock.Location())
}

// seedActivity inserts an event with a server timestamp pinned to at.
func seedActivity(t *testing.T, store *memstore.Store, userID int64, activityType string, at time.Time) db.Activity {
	t.Helper()
	store.SetNow(func() time.Time { return at })
	activity, err := store.CreateActivity(context.Background(), userID, activityType, "")
	require.NoError(t, err)
	return *activity
}

func seedRescue(t *testing.T, store *memstore.Store, userID int64, caseType string, at time.Time) db.Rescue {
	t.Helper()
	store.SetNow(func() time.Time { return at })
	rescue, err := store.CreateRescue(context.Background(), db.NewRescue{UserID: userID, CaseType: caseType})
	require.NoError(t, err)
	return *rescue
}

func strptr(s string) *string {
	return &s
}

var testLogger = zap.NewNop()
