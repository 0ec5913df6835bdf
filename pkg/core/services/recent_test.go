package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chupohan/brigade-duty/pkg/db"
	"github.com/chupohan/brigade-duty/pkg/memstore"
)

func TestRecentFeedMergesRescues(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, 15, 9, 0))
	seedRescue(t, store, 1, "trauma", taipei(t, clock, 15, 11, 0))
	seedActivity(t, store, 1, db.TypeSignOut, taipei(t, clock, 15, 18, 0))

	feed, err := GetRecentActivities(context.Background(), store, testLogger, 1)

	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, db.TypeSignOut, feed[0].Type)
	assert.Equal(t, "rescue", feed[1].Type)
	assert.Equal(t, db.TypeSignIn, feed[2].Type)
}

func TestRecentFeedCappedAtTen(t *testing.T) {
	clock := testClock(t)
	store := memstore.New()

	for day := 1; day <= 12; day++ {
		seedActivity(t, store, 1, db.TypeSignIn, taipei(t, clock, day, 9, 0))
	}
	seedRescue(t, store, 1, "trauma", taipei(t, clock, 13, 9, 0))

	feed, err := GetRecentActivities(context.Background(), store, testLogger, 1)

	require.NoError(t, err)
	assert.Len(t, feed, 10)
	assert.Equal(t, "rescue", feed[0].Type, "newest entry first")
}
