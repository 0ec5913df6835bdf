package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chupohan/brigade-duty/pkg/core/model"
	"github.com/chupohan/brigade-duty/pkg/db"
	"github.com/chupohan/brigade-duty/pkg/memstore"
)

func TestMonthlyPairUsesLatestEvents(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 9, 0))
	latestIn := seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 10, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 15, 18, 0))

	rows, err := GetMonthlyActivities(context.Background(), store, clock, testLogger, 1, 2024, time.May)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	pair := rows[0]
	assert.Equal(t, model.ActivityPair, pair.ActivityType)
	assert.Equal(t, "2024-05-15", pair.Date)
	assert.Equal(t, strptr("10:00"), pair.SignInTime)
	assert.Equal(t, strptr("18:00"), pair.SignOutTime)
	assert.Equal(t, 8.0, pair.Duration)
	assert.Equal(t, latestIn.ID, pair.ActivityID)
	assert.False(t, pair.IsTimeError)

	// The older duplicate sign-in surfaces as its own orphan row.
	orphan := rows[1]
	assert.Equal(t, model.ActivitySignIn, orphan.ActivityType)
	assert.Equal(t, strptr("09:00"), orphan.SignInTime)
	assert.Nil(t, orphan.SignOutTime)
	assert.Equal(t, 0.0, orphan.Duration)
}

func TestMonthlyBackwardsPairFlaggedNotRejected(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 18, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 15, 9, 0))

	rows, err := GetMonthlyActivities(context.Background(), store, clock, testLogger, 1, 2024, time.May)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	pair := rows[0]
	assert.Equal(t, model.ActivityPair, pair.ActivityType)
	assert.True(t, pair.IsTimeError)
	assert.Equal(t, 9.0, pair.Duration, "duration comes from the absolute difference, never negative")
}

func TestMonthlyOrphanSignInOnly(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 9, 0))

	rows, err := GetMonthlyActivities(context.Background(), store, clock, testLogger, 1, 2024, time.May)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, model.ActivitySignIn, rows[0].ActivityType)
	assert.Equal(t, 0.0, rows[0].Duration)
	assert.Nil(t, rows[0].SignOutTime)
}

func TestMonthlyOrphanSignOutsOnly(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 15, 12, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 15, 18, 0))

	rows, err := GetMonthlyActivities(context.Background(), store, clock, testLogger, 1, 2024, time.May)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.Equal(t, model.ActivitySignOut, row.ActivityType)
		assert.Nil(t, row.SignInTime)
	}
	// Newest first within the date.
	assert.Equal(t, strptr("18:00"), rows[0].SignOutTime)
	assert.Equal(t, strptr("12:00"), rows[1].SignOutTime)
}

func TestMonthlyOrderingDatesDescendingPairsFirst(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	// Day 10: clean pair. Day 20: pair plus an extra sign-out.
	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 10, 9, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 10, 17, 0))
	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 20, 8, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 20, 12, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 20, 16, 0))

	rows, err := GetMonthlyActivities(context.Background(), store, clock, testLogger, 1, 2024, time.May)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2024-05-20", rows[0].Date)
	assert.Equal(t, model.ActivityPair, rows[0].ActivityType)
	assert.Equal(t, strptr("16:00"), rows[0].SignOutTime, "pair takes the latest sign-out")

	assert.Equal(t, "2024-05-20", rows[1].Date)
	assert.Equal(t, model.ActivitySignOut, rows[1].ActivityType)
	assert.Equal(t, strptr("12:00"), rows[1].SignOutTime)

	assert.Equal(t, "2024-05-10", rows[2].Date)
	assert.Equal(t, model.ActivityPair, rows[2].ActivityType)
}

func TestMonthlyMonthBoundaryInCivilTime(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	// 23:59:59 on May 31st civil time belongs to May; 00:00:01 on June 1st
	// does not, regardless of the host timezone.
	endOfMay := time.Date(2024, 5, 31, 23, 59, 59, 0, clock.Location())
	startOfJune := time.Date(2024, 6, 1, 0, 0, 1, 0, clock.Location())
	seedActivity(t, store, 1, db.TypeSignIn, endOfMay)
	seedActivity(t, store, 1, db.TypeSignIn, startOfJune)

	mayRows, err := GetMonthlyActivities(context.Background(), store, clock, testLogger, 1, 2024, time.May)
	require.NoError(t, err)
	require.Len(t, mayRows, 1)
	assert.Equal(t, "2024-05-31", mayRows[0].Date)

	juneRows, err := GetMonthlyActivities(context.Background(), store, clock, testLogger, 1, 2024, time.June)
	require.NoError(t, err)
	require.Len(t, juneRows, 1)
	assert.Equal(t, "2024-06-01", juneRows[0].Date)
}

func TestMonthlyReadIsIdempotent(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 9, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 15, 18, 0))
	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 16, 10, 0))

	first, err := GetMonthlyActivities(context.Background(), store, clock, testLogger, 1, 2024, time.May)
	require.NoError(t, err)
	second, err := GetMonthlyActivities(context.Background(), store, clock, testLogger, 1, 2024, time.May)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMonthlyDefaultsToCurrentMonth(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 9, 0))

	pinned := clock.WithNow(func() time.Time { return taipei(t, clock, 20, 12, 0) })
	rows, err := GetMonthlyActivities(context.Background(), store, pinned, testLogger, 1, 0, 0)

	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestGetAllMonthlyActivitiesAttachesUsers(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	ctx := context.Background()
	alice, err := store.CreateUser(ctx, "alice", "x", "Alice Chen", "volunteer")
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, "bob", "x", "Bob Lin", "volunteer")
	require.NoError(t, err)

	seedActivity(t, store, alice.ID, db.TypeSignIn, taipei(t, clock, 15, 9, 0))
	seedActivity(t, store, alice.ID, db.TypeSignOut, taipei(t, clock, 15, 18, 0))
	seedActivity(t, store, bob.ID, db.TypeSignIn, taipei(t, clock, 16, 10, 0))

	rows, err := GetAllMonthlyActivities(ctx, store, clock, testLogger, 2024, time.May)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, alice.ID, rows[0].UserID)
	assert.Equal(t, "Alice Chen", rows[0].UserName)
	assert.Equal(t, model.ActivityPair, rows[0].ActivityType)

	assert.Equal(t, bob.ID, rows[1].UserID)
	assert.Equal(t, model.ActivitySignIn, rows[1].ActivityType)
}
