package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chupohan/brigade-duty/pkg/clients/sheetsclient"
	"github.com/chupohan/brigade-duty/pkg/sheetsync"
)

func syncSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-sheets",
		Short: "Push the rescue log and duty hours to the configured spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.Sheets.SpreadsheetID == "" {
				return fmt.Errorf("no spreadsheetID configured")
			}

			client, err := sheetsclient.NewClient(app.ctx, app.cfg.Sheets.CredentialsFile)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			syncer := sheetsync.NewSyncer(client, app.store, app.clock, &app.cfg.Sheets, app.logger)
			if err := syncer.SyncAll(app.ctx); err != nil {
				return err
			}
			fmt.Println("Sheet sync completed")
			return nil
		},
	}
}
