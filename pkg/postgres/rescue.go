package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chupohan/brigade-duty/pkg/db"
)

const rescueColumns = `
	id, user_id, case_type, case_subtype, treatment, hospital,
	rescue_type, start_time, end_time, wound_dimensions, rescue_address,
	timestamp`

// CreateRescue inserts a rescue case record.
func (d *DB) CreateRescue(ctx context.Context, rescue db.NewRescue) (*db.Rescue, error) {
	r := db.Rescue{
		UserID:          rescue.UserID,
		CaseType:        rescue.CaseType,
		CaseSubtype:     rescue.CaseSubtype,
		Treatment:       rescue.Treatment,
		Hospital:        rescue.Hospital,
		RescueType:      rescue.RescueType,
		StartTime:       rescue.StartTime,
		EndTime:         rescue.EndTime,
		WoundDimensions: rescue.WoundDimensions,
		RescueAddress:   rescue.RescueAddress,
	}
	err := d.pool.QueryRow(ctx, `
		INSERT INTO rescues (
			user_id, case_type, case_subtype, treatment, hospital,
			rescue_type, start_time, end_time, wound_dimensions, rescue_address
		)
		VALUES ($1, $2, nullif($3, ''), nullif($4, ''), nullif($5, ''),
			nullif($6, ''), $7, $8, nullif($9, ''), nullif($10, ''))
		RETURNING id, timestamp
	`, rescue.UserID, rescue.CaseType, rescue.CaseSubtype, rescue.Treatment,
		rescue.Hospital, rescue.RescueType, rescue.StartTime, rescue.EndTime,
		rescue.WoundDimensions, rescue.RescueAddress).Scan(&r.ID, &r.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rescue: %w", err)
	}
	r.Timestamp = r.Timestamp.UTC()
	return &r, nil
}

// ListRescues returns the user's rescues in [from, to], newest first.
func (d *DB) ListRescues(ctx context.Context, userID int64, from, to time.Time) ([]db.Rescue, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+rescueColumns+`
		FROM rescues
		WHERE user_id = $1 AND timestamp BETWEEN $2 AND $3
		ORDER BY timestamp DESC, id DESC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query rescues: %w", err)
	}
	defer rows.Close()

	return scanRescues(rows)
}

// ListAllRescues returns every user's rescues, newest first.
func (d *DB) ListAllRescues(ctx context.Context) ([]db.Rescue, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+rescueColumns+`
		FROM rescues
		ORDER BY timestamp DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rescues: %w", err)
	}
	defer rows.Close()

	return scanRescues(rows)
}

// CountRescues counts the user's rescues in [from, to].
func (d *DB) CountRescues(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	var count int
	err := d.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM rescues
		WHERE user_id = $1 AND timestamp BETWEEN $2 AND $3
	`, userID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rescues: %w", err)
	}
	return count, nil
}

// ListRecentRescues returns the user's newest rescues, capped at limit.
func (d *DB) ListRecentRescues(ctx context.Context, userID int64, limit int) ([]db.Rescue, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+rescueColumns+`
		FROM rescues
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent rescues: %w", err)
	}
	defer rows.Close()

	return scanRescues(rows)
}

func scanRescues(rows pgxRows) ([]db.Rescue, error) {
	var rescues []db.Rescue
	for rows.Next() {
		var r db.Rescue
		var caseSubtype, treatment, hospital, rescueType, wound, address *string
		err := rows.Scan(&r.ID, &r.UserID, &r.CaseType, &caseSubtype, &treatment,
			&hospital, &rescueType, &r.StartTime, &r.EndTime, &wound, &address,
			&r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rescue: %w", err)
		}
		r.Timestamp = r.Timestamp.UTC()
		r.CaseSubtype = deref(caseSubtype)
		r.Treatment = deref(treatment)
		r.Hospital = deref(hospital)
		r.RescueType = deref(rescueType)
		r.WoundDimensions = deref(wound)
		r.RescueAddress = deref(address)
		rescues = append(rescues, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rescues: %w", err)
	}
	return rescues, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
