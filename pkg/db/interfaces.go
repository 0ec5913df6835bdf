package db

import (
	"context"
	"time"
)

// ActivityStore defines attendance event operations.
type ActivityStore interface {
	// CreateActivity appends an event, assigning its ID and a UTC timestamp.
	CreateActivity(ctx context.Context, userID int64, activityType, ip string) (*Activity, error)

	// SupersedeSignIn deletes every signout for the user whose timestamp lies
	// in [from, to], returning the number of rows removed. A fresh sign-in
	// starts a new duty session; stale same-day sign-outs would otherwise
	// read as a closed interval. Implementations perform the delete as a
	// single logical unit.
	SupersedeSignIn(ctx context.Context, userID int64, from, to time.Time) (int64, error)

	// ListActivities returns the user's events of the given types with
	// timestamps in [from, to], newest first. An empty type list matches all
	// types.
	ListActivities(ctx context.Context, userID int64, types []string, from, to time.Time) ([]Activity, error)

	// ListRecentActivities returns the user's newest events, capped at limit.
	ListRecentActivities(ctx context.Context, userID int64, limit int) ([]Activity, error)
}

// RescueStore defines rescue record operations.
type RescueStore interface {
	CreateRescue(ctx context.Context, rescue NewRescue) (*Rescue, error)

	// ListRescues returns the user's rescues with timestamps in [from, to],
	// newest first.
	ListRescues(ctx context.Context, userID int64, from, to time.Time) ([]Rescue, error)

	// ListAllRescues returns every user's rescues, newest first.
	ListAllRescues(ctx context.Context) ([]Rescue, error)

	CountRescues(ctx context.Context, userID int64, from, to time.Time) (int, error)

	ListRecentRescues(ctx context.Context, userID int64, limit int) ([]Rescue, error)
}

// UserStore defines volunteer account operations.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, username, passwordHash, name, role string) (*User, error)

	// ListUsers returns all accounts. Implementations wrapped by Guard
	// exclude test accounts.
	ListUsers(ctx context.Context) ([]User, error)
}

// Store is the full persistence contract the application is built against.
type Store interface {
	ActivityStore
	RescueStore
	UserStore
}
