package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chupohan/brigade-duty/pkg/db"
)

func TestCreateActivityAssignsIDsAndUTCTimestamps(t *testing.T) {
	ctx := context.Background()
	store := New()

	loc, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)
	store.SetNow(func() time.Time { return time.Date(2024, 5, 15, 10, 0, 0, 0, loc) })

	first, err := store.CreateActivity(ctx, 1, db.TypeSignIn, "")
	require.NoError(t, err)
	second, err := store.CreateActivity(ctx, 1, db.TypeSignOut, "")
	require.NoError(t, err)

	assert.Equal(t, first.ID+1, second.ID)
	assert.Equal(t, time.UTC, first.Timestamp.Location())
	assert.Equal(t, 2, first.Timestamp.Hour(), "10:00 Taipei stored as 02:00 UTC")
}

func TestListActivitiesFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	store := New()

	base := time.Date(2024, 5, 15, 1, 0, 0, 0, time.UTC)
	times := []struct {
		typ string
		at  time.Time
	}{
		{db.TypeSignIn, base},
		{db.TypeSignOut, base.Add(8 * time.Hour)},
		{db.TypeTraining, base.Add(10 * time.Hour)},
	}
	for _, e := range times {
		at := e.at
		store.SetNow(func() time.Time { return at })
		_, err := store.CreateActivity(ctx, 1, e.typ, "")
		require.NoError(t, err)
	}

	all, err := store.ListActivities(ctx, 1, nil, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, db.TypeTraining, all[0].Type, "newest first")

	onlyAttendance, err := store.ListActivities(ctx, 1,
		[]string{db.TypeSignIn, db.TypeSignOut}, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, onlyAttendance, 2)

	// Range bounds are inclusive on both ends.
	exact, err := store.ListActivities(ctx, 1, nil, base, base)
	require.NoError(t, err)
	assert.Len(t, exact, 1)
}

func TestSupersedeSignInDeletesOnlySignOutsInRange(t *testing.T) {
	ctx := context.Background()
	store := New()

	base := time.Date(2024, 5, 15, 1, 0, 0, 0, time.UTC)
	seed := func(userID int64, typ string, at time.Time) {
		store.SetNow(func() time.Time { return at })
		_, err := store.CreateActivity(ctx, userID, typ, "")
		require.NoError(t, err)
	}
	seed(1, db.TypeSignIn, base)
	seed(1, db.TypeSignOut, base.Add(3*time.Hour))
	seed(1, db.TypeSignOut, base.Add(30*time.Hour)) // outside range
	seed(2, db.TypeSignOut, base.Add(4*time.Hour))  // other user

	deleted, err := store.SupersedeSignIn(ctx, 1, base, base.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := store.ListActivities(ctx, 1, nil, base, base.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	other, err := store.ListActivities(ctx, 2, nil, base, base.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestUserLookup(t *testing.T) {
	ctx := context.Background()
	store := New()

	created, err := store.CreateUser(ctx, "alice", "hash", "Alice Chen", "volunteer")
	require.NoError(t, err)

	byID, err := store.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	byName, err := store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.ID, byName.ID)

	missing, err := store.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
