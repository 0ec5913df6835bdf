package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chupohan/brigade-duty/pkg/core/services"
)

func dailyCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show today's duty status for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			daily, err := services.GetDailyActivity(app.ctx, app.store, app.clock, app.logger, userID)
			if err != nil {
				return err
			}

			if daily.SignInTime == nil && daily.SignOutTime == nil {
				fmt.Println("No activity recorded today")
				return nil
			}
			fmt.Printf("Sign-in:  %s\n", orDash(daily.SignInTime))
			fmt.Printf("Sign-out: %s\n", orDash(daily.SignOutTime))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User ID (required)")
	cmd.MarkFlagRequired("user")
	return cmd
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
