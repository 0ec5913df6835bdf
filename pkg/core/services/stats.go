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

// StatsStore defines the database operations needed for the monthly
// roll-up.
type StatsStore interface {
	ListActivities(ctx context.Context, userID int64, types []string, from, to time.Time) ([]db.Activity, error)
	CountRescues(ctx context.Context, userID int64, from, to time.Time) (int, error)
}

// AdminStatsStore additionally lists the accounts the admin roll-up
// iterates over.
type AdminStatsStore interface {
	StatsStore
	ListUsers(ctx context.Context) ([]db.User, error)
}

// GetStats computes a user's monthly totals: duty hours from the latest
// sign-in/sign-out pair of each day, plus rescue, training and duty counts.
// Unlike the monthly breakdown this is a scalar summary, so orphan
// duplicates are ignored. A zero year/month defaults to the current civil
// month.
func GetStats(
	ctx context.Context,
	store StatsStore,
	clock *civiltime.Clock,
	logger *zap.Logger,
	userID int64,
	year int,
	month time.Month,
) (*model.Stats, error) {
	if year == 0 || month == 0 {
		year, month = clock.CurrentMonth()
	}
	monthStart, monthEnd := clock.MonthBounds(year, month)

	activities, err := store.ListActivities(ctx, userID, nil, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly activities: %w", err)
	}

	rescueCount, err := store.CountRescues(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count rescues: %w", err)
	}

	type dayPair struct {
		signIn  *db.Activity
		signOut *db.Activity
	}
	days := make(map[string]*dayPair)

	stats := &model.Stats{RescueCount: rescueCount}
	for i := range activities { // newest first
		a := &activities[i]
		switch a.Type {
		case db.TypeTraining:
			stats.TrainingCount++
		case db.TypeDuty:
			stats.DutyCount++
		case db.TypeSignIn, db.TypeSignOut:
			date := clock.DateString(a.Timestamp)
			day, ok := days[date]
			if !ok {
				day = &dayPair{}
				days[date] = day
			}
			// Newest-first iteration means the first event seen per type is
			// the latest of the day.
			if a.Type == db.TypeSignIn && day.signIn == nil {
				day.signIn = a
			}
			if a.Type == db.TypeSignOut && day.signOut == nil {
				day.signOut = a
			}
		}
	}

	var workHours float64
	for _, day := range days {
		if day.signIn != nil && day.signOut != nil {
			workHours += boundedDurationHours(day.signIn.Timestamp, day.signOut.Timestamp)
		}
	}
	stats.WorkHours = round1(workHours)
	if stats.WorkHours < 0 {
		stats.WorkHours = 0
	}

	logger.Debug("Computed monthly stats",
		zap.Int64("user_id", userID),
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Float64("work_hours", stats.WorkHours),
		zap.Int("rescue_count", stats.RescueCount))

	return stats, nil
}

// GetAllStats runs the monthly roll-up for every account independently and
// concatenates the rows with user attribution. There is no cross-user
// aggregation; the result is per-user rows for an admin table or export.
func GetAllStats(
	ctx context.Context,
	store AdminStatsStore,
	clock *civiltime.Clock,
	logger *zap.Logger,
	year int,
	month time.Month,
) ([]model.UserStats, error) {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	logger.Debug("Building admin stats roll-up", zap.Int("users", len(users)))

	result := make([]model.UserStats, 0, len(users))
	for _, user := range users {
		stats, err := GetStats(ctx, store, clock, logger, user.ID, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to compute stats for user %d: %w", user.ID, err)
		}
		result = append(result, model.UserStats{
			Stats:    *stats,
			UserID:   user.ID,
			UserName: user.Name,
		})
	}
	return result, nil
}
