package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/chupohan/brigade-duty/pkg/core/model"
	"github.com/chupohan/brigade-duty/pkg/db"
)

const (
	recentFeedLimit    = 10
	recentRescuesLimit = 5
)

// RecentStore defines the database operations needed for the recent
// activity feed.
type RecentStore interface {
	ListRecentActivities(ctx context.Context, userID int64, limit int) ([]db.Activity, error)
	ListRecentRescues(ctx context.Context, userID int64, limit int) ([]db.Rescue, error)
}

// GetRecentActivities returns the user's latest attendance events merged
// with their latest rescue submissions (surfaced as type "rescue"), newest
// first, capped at ten entries.
func GetRecentActivities(
	ctx context.Context,
	store RecentStore,
	logger *zap.Logger,
	userID int64,
) ([]model.FeedEntry, error) {
	activities, err := store.ListRecentActivities(ctx, userID, recentFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent activities: %w", err)
	}

	rescues, err := store.ListRecentRescues(ctx, userID, recentRescuesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent rescues: %w", err)
	}

	feed := make([]model.FeedEntry, 0, len(activities)+len(rescues))
	for _, a := range activities {
		feed = append(feed, model.FeedEntry{
			ID:        a.ID,
			Type:      a.Type,
			Timestamp: a.Timestamp,
		})
	}
	for _, r := range rescues {
		feed = append(feed, model.FeedEntry{
			ID:        r.ID,
			Type:      "rescue",
			Timestamp: r.Timestamp,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > recentFeedLimit {
		feed = feed[:recentFeedLimit]
	}

	logger.Debug("Built recent activity feed",
		zap.Int64("user_id", userID),
		zap.Int("entries", len(feed)))

	return feed, nil
}
