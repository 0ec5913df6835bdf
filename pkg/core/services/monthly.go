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

// MonthlyStore defines the database operations needed for the monthly
// breakdown.
type MonthlyStore interface {
	ListActivities(ctx context.Context, userID int64, types []string, from, to time.Time) ([]db.Activity, error)
}

// AdminMonthlyStore additionally lists the accounts the admin breakdown
// iterates over.
type AdminMonthlyStore interface {
	MonthlyStore
	ListUsers(ctx context.Context) ([]db.User, error)
}

// GetMonthlyActivities returns the complete audit breakdown of a user's
// sign-ins and sign-outs for a civil month. Each date yields one pair
// record from the latest sign-in and latest sign-out, plus one orphan
// record per remaining event, so double sign-ins, orphaned sign-outs and
// backwards time ranges stay visible instead of being collapsed away.
// A zero year/month defaults to the current civil month.
func GetMonthlyActivities(
	ctx context.Context,
	store MonthlyStore,
	clock *civiltime.Clock,
	logger *zap.Logger,
	userID int64,
	year int,
	month time.Month,
) ([]model.MonthlyActivity, error) {
	if year == 0 || month == 0 {
		year, month = clock.CurrentMonth()
	}
	monthStart, monthEnd := clock.MonthBounds(year, month)

	activities, err := store.ListActivities(ctx, userID,
		[]string{db.TypeSignIn, db.TypeSignOut}, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly activities: %w", err)
	}
	logger.Debug("Fetched monthly activities",
		zap.Int64("user_id", userID),
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("count", len(activities)))

	return buildMonthlyBreakdown(clock, activities), nil
}

// GetAllMonthlyActivities runs the monthly breakdown for every account and
// concatenates the rows with user attribution, for the admin table and
// exports.
func GetAllMonthlyActivities(
	ctx context.Context,
	store AdminMonthlyStore,
	clock *civiltime.Clock,
	logger *zap.Logger,
	year int,
	month time.Month,
) ([]model.UserMonthlyActivity, error) {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	logger.Debug("Building admin monthly breakdown", zap.Int("users", len(users)))

	var all []model.UserMonthlyActivity
	for _, user := range users {
		rows, err := GetMonthlyActivities(ctx, store, clock, logger, user.ID, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to build breakdown for user %d: %w", user.ID, err)
		}
		for _, row := range rows {
			all = append(all, model.UserMonthlyActivity{
				MonthlyActivity: row,
				UserID:          user.ID,
				UserName:        user.Name,
			})
		}
	}
	return all, nil
}

// buildMonthlyBreakdown groups newest-first events by civil date and emits
// the pair/orphan rows. Iterating dates in first-seen order keeps the
// result date-descending, with each date's pair record ahead of its
// orphans.
func buildMonthlyBreakdown(clock *civiltime.Clock, activities []db.Activity) []model.MonthlyActivity {
	type dayEvents struct {
		signIns  []db.Activity // newest first
		signOuts []db.Activity // newest first
	}

	days := make(map[string]*dayEvents)
	var dateOrder []string
	for _, a := range activities {
		date := clock.DateString(a.Timestamp)
		day, ok := days[date]
		if !ok {
			day = &dayEvents{}
			days[date] = day
			dateOrder = append(dateOrder, date)
		}
		switch a.Type {
		case db.TypeSignIn:
			day.signIns = append(day.signIns, a)
		case db.TypeSignOut:
			day.signOuts = append(day.signOuts, a)
		}
	}

	var result []model.MonthlyActivity
	for _, date := range dateOrder {
		day := days[date]

		if len(day.signIns) > 0 && len(day.signOuts) > 0 {
			latestIn := day.signIns[0]
			latestOut := day.signOuts[0]

			inTime := clock.TimeOfDay(latestIn.Timestamp)
			outTime := clock.TimeOfDay(latestOut.Timestamp)
			result = append(result, model.MonthlyActivity{
				Date:         date,
				SignInTime:   &inTime,
				SignOutTime:  &outTime,
				Duration:     boundedDurationHours(latestIn.Timestamp, latestOut.Timestamp),
				IsTimeError:  latestIn.Timestamp.After(latestOut.Timestamp),
				ActivityID:   latestIn.ID,
				ActivityType: model.ActivityPair,
			})

			for _, in := range day.signIns[1:] {
				result = append(result, orphanRecord(clock, date, in))
			}
			for _, out := range day.signOuts[1:] {
				result = append(result, orphanRecord(clock, date, out))
			}
			continue
		}

		for _, in := range day.signIns {
			result = append(result, orphanRecord(clock, date, in))
		}
		for _, out := range day.signOuts {
			result = append(result, orphanRecord(clock, date, out))
		}
	}
	return result
}

func orphanRecord(clock *civiltime.Clock, date string, activity db.Activity) model.MonthlyActivity {
	t := clock.TimeOfDay(activity.Timestamp)
	record := model.MonthlyActivity{
		Date:       date,
		ActivityID: activity.ID,
	}
	if activity.Type == db.TypeSignIn {
		record.SignInTime = &t
		record.ActivityType = model.ActivitySignIn
	} else {
		record.SignOutTime = &t
		record.ActivityType = model.ActivitySignOut
	}
	return record
}
