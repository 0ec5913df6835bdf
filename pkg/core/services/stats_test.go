package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chupohan/brigade-duty/pkg/db"
	"github.com/chupohan/brigade-duty/pkg/memstore"
)

func TestStatsMostRecentPairPerDay(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 9, 0))
	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 10, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 15, 18, 0))

	stats, err := GetStats(context.Background(), store, clock, testLogger, 1, 2024, time.May)

	require.NoError(t, err)
	assert.Equal(t, 8.0, stats.WorkHours, "pairs 10:00 with 18:00, not 09:00")
}

func TestStatsAccumulatesAcrossDays(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 10, 9, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 10, 13, 30))
	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 11, 8, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 11, 14, 15))

	stats, err := GetStats(context.Background(), store, clock, testLogger, 1, 2024, time.May)

	require.NoError(t, err)
	assert.InDelta(t, 10.8, stats.WorkHours, 0.001) // 4.5 + 6.3
}

func TestStatsIgnoresOrphanDays(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 10, 9, 0)) // no sign-out
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 11, 17, 0)) // no sign-in

	stats, err := GetStats(context.Background(), store, clock, testLogger, 1, 2024, time.May)

	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.WorkHours)
}

func TestStatsCountsTrainingDutyAndRescues(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeTraining, taipei(t, clock, 5, 19, 0))
	seedActivity(t, store, 1, db.TypeTraining, taipei(t, clock, 12, 19, 0))
	seedActivity(t, store, 1, db.TypeDuty, taipei(t, clock, 8, 20, 0))
	seedRescue(t, store, 1, "trauma", taipei(t, clock, 9, 3, 0))
	seedRescue(t, store, 1, "ohca", taipei(t, clock, 22, 4, 0))
	seedRescue(t, store, 1, "trauma", time.Date(2024, 4, 30, 10, 0, 0, 0, clock.Location())) // April

	stats, err := GetStats(context.Background(), store, clock, testLogger, 1, 2024, time.May)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TrainingCount)
	assert.Equal(t, 1, stats.DutyCount)
	assert.Equal(t, 2, stats.RescueCount)
}

func TestStatsBackwardsPairContributesAbsoluteHours(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 18, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 15, 9, 0))

	stats, err := GetStats(context.Background(), store, clock, testLogger, 1, 2024, time.May)

	require.NoError(t, err)
	assert.Equal(t, 9.0, stats.WorkHours)
}

func TestStatsDefaultsToCurrentMonth(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 9, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 15, 17, 0))

	pinned := clock.WithNow(func() time.Time { return taipei(t, clock, 20, 12, 0) })
	stats, err := GetStats(context.Background(), store, pinned, testLogger, 1, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 8.0, stats.WorkHours)
}

func TestGetAllStatsAttachesUsers(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	ctx := context.Background()
	alice, err := store.CreateUser(ctx, "alice", "x", "Alice Chen", "volunteer")
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, "bob", "x", "Bob Lin", "volunteer")
	require.NoError(t, err)

	seedActivity(t, store, alice.ID, db.TypeSignIn, taipei(t, clock, 15, 9, 0))
	seedActivity(t, store, alice.ID, db.TypeSignOut, taipei(t, clock, 15, 18, 0))
	seedRescue(t, store, bob.ID, "trauma", taipei(t, clock, 16, 2, 0))

	rows, err := GetAllStats(ctx, store, clock, testLogger, 2024, time.May)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alice Chen", rows[0].UserName)
	assert.Equal(t, 8.0, rows[0].WorkHours)
	assert.Equal(t, 0, rows[0].RescueCount)

	assert.Equal(t, bob.ID, rows[1].UserID)
	assert.Equal(t, 0.0, rows[1].WorkHours)
	assert.Equal(t, 1, rows[1].RescueCount)
}
