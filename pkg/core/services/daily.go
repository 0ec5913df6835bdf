package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chupohan/brigade-duty/pkg/core/civiltime"
	"github.com/chupohan/brigade-duty/pkg/core/model"
	"github.com/chupohan/brigade-duty/pkg/db"
)

// DailyStore defines the database operations needed for the daily status
// view.
type DailyStore interface {
	ListActivities(ctx context.Context, userID int64, types []string, from, to time.Time) ([]db.Activity, error)
}

// GetDailyActivity returns the user's live duty status for the current
// civil day. A volunteer may sign in, out, and in again; the status view
// reflects the latest sign-in and latest sign-out, not the day's first
// transition.
func GetDailyActivity(
	ctx context.Context,
	store DailyStore,
	clock *civiltime.Clock,
	logger *zap.Logger,
	userID int64,
) (*model.DailyActivity, error) {
	dayStart, dayEnd := clock.DayBounds(clock.Now())

	activities, err := store.ListActivities(ctx, userID,
		[]string{db.TypeSignIn, db.TypeSignOut}, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch today's activities: %w", err)
	}
	logger.Debug("Fetched today's activities",
		zap.Int64("user_id", userID),
		zap.Int("count", len(activities)))

	daily := &model.DailyActivity{}
	for _, a := range activities { // newest first
		switch a.Type {
		case db.TypeSignIn:
			if daily.SignInTime == nil {
				t := clock.TimeOfDay(a.Timestamp)
				daily.SignInTime = &t
			}
		case db.TypeSignOut:
			if daily.SignOutTime == nil {
				t := clock.TimeOfDay(a.Timestamp)
				daily.SignOutTime = &t
				ip := a.IP
				daily.SignOutIP = &ip
			}
		}
	}

	return daily, nil
}
