// Package sheetsync mirrors the rescue log and monthly duty hours into the
// Google spreadsheet the brigade's administrators review, replacing manual
// paper tallies.
package sheetsync

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/chupohan/brigade-duty/internal/config"
	"github.com/chupohan/brigade-duty/pkg/core/civiltime"
	"github.com/chupohan/brigade-duty/pkg/core/services"
	"github.com/chupohan/brigade-duty/pkg/db"
)

// SheetWriter defines the spreadsheet operations the sync needs.
type SheetWriter interface {
	ListSheetTitles(spreadsheetID string) ([]string, error)
	AddSheet(spreadsheetID, title string) error
	UpdateValues(spreadsheetID, sheetRange string, values [][]interface{}) error
}

// SyncStore defines the database operations the sync needs.
type SyncStore interface {
	services.AdminMonthlyStore
	ListAllRescues(ctx context.Context) ([]db.Rescue, error)
}

// Syncer pushes rescue and duty-hour data to the configured spreadsheet.
type Syncer struct {
	writer SheetWriter
	store  SyncStore
	clock  *civiltime.Clock
	cfg    *config.SheetsConfig
	logger *zap.Logger
}

// NewSyncer creates a Syncer.
func NewSyncer(writer SheetWriter, store SyncStore, clock *civiltime.Clock, cfg *config.SheetsConfig, logger *zap.Logger) *Syncer {
	return &Syncer{writer: writer, store: store, clock: clock, cfg: cfg, logger: logger}
}

// EnsureSheets creates the rescue and activity tabs if they are missing.
func (s *Syncer) EnsureSheets() error {
	titles, err := s.writer.ListSheetTitles(s.cfg.SpreadsheetID)
	if err != nil {
		return fmt.Errorf("failed to list sheet tabs: %w", err)
	}

	existing := make(map[string]bool, len(titles))
	for _, title := range titles {
		existing[title] = true
	}

	for _, tab := range []string{s.cfg.RescueTab, s.cfg.ActivityTab} {
		if existing[tab] {
			continue
		}
		if err := s.writer.AddSheet(s.cfg.SpreadsheetID, tab); err != nil {
			return fmt.Errorf("failed to create tab %q: %w", tab, err)
		}
		s.logger.Info("Created spreadsheet tab", zap.String("tab", tab))
	}
	return nil
}

// SyncRescues overwrites the rescue tab with every rescue record, newest
// first, attributed by volunteer name.
func (s *Syncer) SyncRescues(ctx context.Context) (int, error) {
	rescues, err := s.store.ListAllRescues(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rescues: %w", err)
	}

	names, err := s.userNames(ctx)
	if err != nil {
		return 0, err
	}

	rows := [][]interface{}{
		{"姓名", "時間", "項目", "子項目", "處置", "送達醫院"},
	}
	for _, r := range rescues {
		rows = append(rows, []interface{}{
			names[r.UserID],
			s.clock.DateTimeString(r.Timestamp),
			r.CaseType,
			r.CaseSubtype,
			r.Treatment,
			r.Hospital,
		})
	}

	if err := s.writer.UpdateValues(s.cfg.SpreadsheetID, s.cfg.RescueTab+"!A1", rows); err != nil {
		return 0, fmt.Errorf("failed to write rescue rows: %w", err)
	}
	return len(rescues), nil
}

// SyncActivities overwrites the activity tab with every user's current-month
// duty rows: name, date, sign-in, sign-out, hours.
func (s *Syncer) SyncActivities(ctx context.Context) (int, error) {
	year, month := s.clock.CurrentMonth()
	rows := [][]interface{}{
		{"姓名", "協勤日期", "簽到時間", "簽退時間", "時數"},
	}

	activities, err := services.GetAllMonthlyActivities(ctx, s.store, s.clock, s.logger, year, month)
	if err != nil {
		return 0, fmt.Errorf("failed to build monthly breakdown: %w", err)
	}

	count := 0
	for _, row := range activities {
		rows = append(rows, []interface{}{
			row.UserName,
			row.Date,
			timeOrBlank(row.SignInTime),
			timeOrBlank(row.SignOutTime),
			strconv.FormatFloat(row.Duration, 'f', 1, 64),
		})
		count++
	}

	if err := s.writer.UpdateValues(s.cfg.SpreadsheetID, s.cfg.ActivityTab+"!A1", rows); err != nil {
		return 0, fmt.Errorf("failed to write activity rows: %w", err)
	}
	return count, nil
}

// SyncAll ensures the tabs exist and pushes both datasets.
func (s *Syncer) SyncAll(ctx context.Context) error {
	start := time.Now()
	if err := s.EnsureSheets(); err != nil {
		return err
	}

	rescueCount, err := s.SyncRescues(ctx)
	if err != nil {
		return err
	}

	activityCount, err := s.SyncActivities(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("Sheet sync completed",
		zap.Int("rescue_rows", rescueCount),
		zap.Int("activity_rows", activityCount),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *Syncer) userNames(ctx context.Context) (map[int64]string, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func timeOrBlank(t *string) string {
	if t == nil {
		return ""
	}
	return *t
}
