package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chupohan/brigade-duty/pkg/core/model"
	"github.com/chupohan/brigade-duty/pkg/core/services"
)

func monthlyCmd() *cobra.Command {
	var (
		userID int64
		year   int
		month  int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show the monthly duty breakdown",
		Long:  `Shows paired sign-in/sign-out rows and orphan events for a civil month. Defaults to the current month.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				rows, err := services.GetAllMonthlyActivities(app.ctx, app.store, app.clock, app.logger, year, time.Month(month))
				if err != nil {
					return err
				}
				for _, row := range rows {
					fmt.Printf("%-20s ", row.UserName)
					printMonthlyRow(row.MonthlyActivity)
				}
				return nil
			}

			if userID == 0 {
				return fmt.Errorf("either --user or --all is required")
			}
			rows, err := services.GetMonthlyActivities(app.ctx, app.store, app.clock, app.logger, userID, year, time.Month(month))
			if err != nil {
				return err
			}
			for _, row := range rows {
				printMonthlyRow(row)
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User ID")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Civil year (defaults to current)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "Civil month 1-12 (defaults to current)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every user's breakdown")
	return cmd
}

func printMonthlyRow(row model.MonthlyActivity) {
	marker := ""
	if row.IsTimeError {
		marker = " (time error)"
	}
	fmt.Printf("%s  in %-5s  out %-5s  %.1fh  %s%s\n",
		row.Date, orDash(row.SignInTime), orDash(row.SignOutTime), row.Duration, row.ActivityType, marker)
}
