package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chupohan/brigade-duty/pkg/core/civiltime"
	"github.com/chupohan/brigade-duty/pkg/db"
)

// RecordStore defines the database operations needed to record activities
// and rescues.
type RecordStore interface {
	CreateActivity(ctx context.Context, userID int64, activityType, ip string) (*db.Activity, error)
	SupersedeSignIn(ctx context.Context, userID int64, from, to time.Time) (int64, error)
	CreateRescue(ctx context.Context, rescue db.NewRescue) (*db.Rescue, error)
}

var validActivityTypes = map[string]bool{
	db.TypeSignIn:   true,
	db.TypeSignOut:  true,
	db.TypeTraining: true,
	db.TypeDuty:     true,
}

// RecordActivity appends an attendance event for the user. A sign-in first
// deletes today's stale sign-outs (a fresh sign-in starts a new duty
// session); if that delete fails the insert is still attempted, since
// losing the check-in would be worse than leaving a stale sign-out.
func RecordActivity(
	ctx context.Context,
	store RecordStore,
	clock *civiltime.Clock,
	logger *zap.Logger,
	userID int64,
	activityType string,
	ip string,
) (*db.Activity, error) {
	if activityType == "" {
		return nil, validationErrorf("activity type is required")
	}
	if !validActivityTypes[activityType] {
		return nil, validationErrorf("unknown activity type %q", activityType)
	}

	if activityType == db.TypeSignIn {
		dayStart, dayEnd := clock.DayBounds(clock.Now())
		deleted, err := store.SupersedeSignIn(ctx, userID, dayStart, dayEnd)
		if err != nil {
			logger.Warn("Failed to supersede stale sign-outs, recording sign-in anyway",
				zap.Int64("user_id", userID),
				zap.Error(err))
		} else if deleted > 0 {
			logger.Debug("Superseded stale sign-outs",
				zap.Int64("user_id", userID),
				zap.Int64("deleted", deleted))
		}
	}

	activity, err := store.CreateActivity(ctx, userID, activityType, ip)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	logger.Info("Activity recorded",
		zap.Int64("user_id", userID),
		zap.String("type", activityType),
		zap.Int64("activity_id", activity.ID))

	return activity, nil
}

// RecordRescue appends a rescue case record for the user.
func RecordRescue(
	ctx context.Context,
	store RecordStore,
	logger *zap.Logger,
	rescue db.NewRescue,
) (*db.Rescue, error) {
	if rescue.CaseType == "" {
		return nil, validationErrorf("case type is required")
	}

	record, err := store.CreateRescue(ctx, rescue)
	if err != nil {
		return nil, fmt.Errorf("failed to create rescue record: %w", err)
	}

	logger.Info("Rescue recorded",
		zap.Int64("user_id", rescue.UserID),
		zap.String("case_type", rescue.CaseType),
		zap.Int64("rescue_id", record.ID))

	return record, nil
}
