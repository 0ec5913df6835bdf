package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chupohan/brigade-duty/pkg/core/services"
	"github.com/chupohan/brigade-duty/pkg/db"
)

func recordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an attendance event or rescue case",
	}
	cmd.AddCommand(recordActivityCmd())
	cmd.AddCommand(recordRescueCmd())
	return cmd
}

func recordActivityCmd() *cobra.Command {
	var (
		userID       int64
		activityType string
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Record a sign-in, sign-out, training or duty event",
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := services.RecordActivity(app.ctx, app.store, app.clock, app.logger, userID, activityType, "")
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s for user %d at %s\n",
				activity.Type, activity.UserID, app.clock.DateTimeString(activity.Timestamp))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User ID (required)")
	cmd.Flags().StringVarP(&activityType, "type", "t", "", "Activity type: signin, signout, training or duty (required)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("type")
	return cmd
}

func recordRescueCmd() *cobra.Command {
	var (
		userID      int64
		caseType    string
		caseSubtype string
		treatment   string
		hospital    string
		rescueType  string
		address     string
	)

	cmd := &cobra.Command{
		Use:   "rescue",
		Short: "Record a rescue case",
		RunE: func(cmd *cobra.Command, args []string) error {
			rescue, err := services.RecordRescue(app.ctx, app.store, app.logger, db.NewRescue{
				UserID:        userID,
				CaseType:      caseType,
				CaseSubtype:   caseSubtype,
				Treatment:     treatment,
				Hospital:      hospital,
				RescueType:    rescueType,
				RescueAddress: address,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded rescue %d (%s) for user %d\n", rescue.ID, rescue.CaseType, rescue.UserID)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User ID (required)")
	cmd.Flags().StringVar(&caseType, "case-type", "", "Case type (required)")
	cmd.Flags().StringVar(&caseSubtype, "case-subtype", "", "Case subtype")
	cmd.Flags().StringVar(&treatment, "treatment", "", "Treatment given")
	cmd.Flags().StringVar(&hospital, "hospital", "", "Destination hospital")
	cmd.Flags().StringVar(&rescueType, "level", "", "Rescue level, e.g. ALS or BLS")
	cmd.Flags().StringVar(&address, "address", "", "Rescue address")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("case-type")
	return cmd
}
