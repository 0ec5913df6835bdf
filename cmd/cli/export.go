package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chupohan/brigade-duty/pkg/core/services"
	"github.com/chupohan/brigade-duty/pkg/export"
)

func exportCmd() *cobra.Command {
	var (
		year    int
		month   int
		out     string
		rescues bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export duty hours or the rescue log to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rescues {
				return exportRescues(out)
			}
			return exportActivities(out, year, time.Month(month))
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Civil year (defaults to current)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "Civil month 1-12 (defaults to current)")
	cmd.Flags().StringVarP(&out, "out", "o", "export.xlsx", "Output file path")
	cmd.Flags().BoolVar(&rescues, "rescues", false, "Export the rescue log instead of duty hours")
	return cmd
}

func exportActivities(out string, year int, month time.Month) error {
	if year == 0 || month == 0 {
		year, month = app.clock.CurrentMonth()
	}

	rows, err := services.GetAllMonthlyActivities(app.ctx, app.store, app.clock, app.logger, year, month)
	if err != nil {
		return err
	}

	workbook, err := export.BuildActivityWorkbook(rows, year, month)
	if err != nil {
		return err
	}
	if err := workbook.SaveAs(out); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	fmt.Printf("Wrote %d duty rows to %s\n", len(rows), out)
	return nil
}

func exportRescues(out string) error {
	rescues, err := app.store.ListAllRescues(app.ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch rescues: %w", err)
	}

	users, err := app.store.ListUsers(app.ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	workbook, err := export.BuildRescueWorkbook(rescues, names, app.clock)
	if err != nil {
		return err
	}
	if err := workbook.SaveAs(out); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	fmt.Printf("Wrote %d rescue rows to %s\n", len(rescues), out)
	return nil
}
