package sheetsync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
)

// Run executes the sync on the schedule described by the configured RRULE
// until the context is cancelled. A failed run is logged and the next
// occurrence still fires.
func (s *Syncer) Run(ctx context.Context) error {
	rule, err := rrule.StrToRRule(s.cfg.SyncRule)
	if err != nil {
		return fmt.Errorf("failed to parse sync rule: %w", err)
	}
	// Anchor the recurrence at now; config rules normally carry no DTSTART.
	rule.DTStart(time.Now())

	s.logger.Info("Sheet sync scheduler started", zap.String("rule", s.cfg.SyncRule))

	for {
		next := rule.After(time.Now(), false)
		if next.IsZero() {
			s.logger.Info("Sync rule has no further occurrences, scheduler stopping")
			return nil
		}

		s.logger.Debug("Next sheet sync scheduled", zap.Time("at", next))
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		runID := uuid.NewString()
		s.logger.Info("Starting scheduled sheet sync", zap.String("run_id", runID))
		if err := s.SyncAll(ctx); err != nil {
			s.logger.Error("Scheduled sheet sync failed",
				zap.String("run_id", runID),
				zap.Error(err))
		}
	}
}
