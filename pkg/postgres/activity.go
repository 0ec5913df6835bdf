package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chupohan/brigade-duty/pkg/db"
)

// CreateActivity appends an attendance event. The row's timestamp is
// assigned by the database, never by the caller.
func (d *DB) CreateActivity(ctx context.Context, userID int64, activityType, ip string) (*db.Activity, error) {
	var ipValue *string
	if ip != "" {
		ipValue = &ip
	}

	activity := db.Activity{UserID: userID, Type: activityType, IP: ip}
	err := d.pool.QueryRow(ctx, `
		INSERT INTO activities (user_id, type, ip)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp
	`, userID, activityType, ipValue).Scan(&activity.ID, &activity.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activity: %w", err)
	}
	activity.Timestamp = activity.Timestamp.UTC()
	return &activity, nil
}

// SupersedeSignIn deletes the user's sign-outs in [from, to]. A single
// DELETE keeps the supersession atomic on the storage side.
func (d *DB) SupersedeSignIn(ctx context.Context, userID int64, from, to time.Time) (int64, error) {
	tag, err := d.pool.Exec(ctx, `
		DELETE FROM activities
		WHERE user_id = $1 AND type = $2 AND timestamp BETWEEN $3 AND $4
	`, userID, db.TypeSignOut, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to delete superseded sign-outs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListActivities returns the user's events in [from, to], newest first,
// optionally restricted to the given types.
func (d *DB) ListActivities(ctx context.Context, userID int64, types []string, from, to time.Time) ([]db.Activity, error) {
	query := `
		SELECT id, user_id, type, timestamp, ip
		FROM activities
		WHERE user_id = $1 AND timestamp BETWEEN $2 AND $3
	`
	args := []interface{}{userID, from, to}
	if len(types) > 0 {
		query += ` AND type = ANY($4)`
		args = append(args, types)
	}
	query += ` ORDER BY timestamp DESC, id DESC`

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListRecentActivities returns the user's newest events, capped at limit.
func (d *DB) ListRecentActivities(ctx context.Context, userID int64, limit int) ([]db.Activity, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, user_id, type, timestamp, ip
		FROM activities
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanActivities(rows pgxRows) ([]db.Activity, error) {
	var activities []db.Activity
	for rows.Next() {
		var a db.Activity
		var ip *string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Timestamp, &ip); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Timestamp = a.Timestamp.UTC()
		if ip != nil {
			a.IP = *ip
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}
	return activities, nil
}
