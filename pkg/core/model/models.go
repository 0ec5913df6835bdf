// Package model holds the derived read models the aggregation services
// produce. None of these are persisted; they are pure functions of the
// stored activity and rescue sets for a user and time window.
package model

import "time"

// Activity type tags on MonthlyActivity records.
const (
	ActivityPair    = "pair"    // matched sign-in/sign-out for a date
	ActivitySignIn  = "signin"  // orphan sign-in with no counterpart
	ActivitySignOut = "signout" // orphan sign-out with no counterpart
)

// DailyActivity is the live duty status for the current civil day. Times are
// "HH:mm" strings in civil time; nil means no event of that kind today.
type DailyActivity struct {
	SignInTime  *string `json:"signInTime"`
	SignOutTime *string `json:"signOutTime"`
	SignOutIP   *string `json:"signOutIP"`
}

// MonthlyActivity is one row of the monthly audit breakdown: either a
// matched pair for a date or an orphan sign-in/sign-out surfaced on its own
// so anomalies stay visible to a reviewer.
type MonthlyActivity struct {
	Date         string  `json:"date"`
	SignInTime   *string `json:"signInTime"`
	SignOutTime  *string `json:"signOutTime"`
	Duration     float64 `json:"duration"`
	IsTimeError  bool    `json:"isTimeError"`
	ActivityID   int64   `json:"activityId"`
	ActivityType string  `json:"activityType"`
}

// UserMonthlyActivity is a MonthlyActivity attributed to a user, as emitted
// by the admin breakdown.
type UserMonthlyActivity struct {
	MonthlyActivity
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
}

// Stats are the per-user monthly totals.
type Stats struct {
	WorkHours     float64 `json:"workHours"`
	RescueCount   int     `json:"rescueCount"`
	TrainingCount int     `json:"trainingCount"`
	DutyCount     int     `json:"dutyCount"`
}

// UserStats are Stats attributed to a user, as emitted by the admin roll-up.
type UserStats struct {
	Stats
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
}

// FeedEntry is one row of the recent-activity feed, merging attendance
// events and rescue submissions.
type FeedEntry struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}
