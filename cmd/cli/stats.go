package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chupohan/brigade-duty/pkg/core/services"
)

func statsCmd() *cobra.Command {
	var (
		userID int64
		year   int
		month  int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show monthly duty totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				rows, err := services.GetAllStats(app.ctx, app.store, app.clock, app.logger, year, time.Month(month))
				if err != nil {
					return err
				}
				for _, row := range rows {
					fmt.Printf("%-20s %6.1fh  rescues %-3d trainings %-3d duties %d\n",
						row.UserName, row.WorkHours, row.RescueCount, row.TrainingCount, row.DutyCount)
				}
				return nil
			}

			if userID == 0 {
				return fmt.Errorf("either --user or --all is required")
			}
			stats, err := services.GetStats(app.ctx, app.store, app.clock, app.logger, userID, year, time.Month(month))
			if err != nil {
				return err
			}
			fmt.Printf("Work hours: %.1f\n", stats.WorkHours)
			fmt.Printf("Rescues:    %d\n", stats.RescueCount)
			fmt.Printf("Trainings:  %d\n", stats.TrainingCount)
			fmt.Printf("Duties:     %d\n", stats.DutyCount)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User ID")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Civil year (defaults to current)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "Civil month 1-12 (defaults to current)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every user's totals")
	return cmd
}
