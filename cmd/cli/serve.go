package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chupohan/brigade-duty/pkg/api"
	"github.com/chupohan/brigade-duty/pkg/clients/sheetsclient"
	"github.com/chupohan/brigade-duty/pkg/sheetsync"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long:  `Serves the duty-tracking API. When a spreadsheet is configured the scheduled sheet sync runs alongside the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := api.NewServer(app.store, app.clock, app.logger)

			if app.cfg.Sheets.SpreadsheetID != "" {
				client, err := sheetsclient.NewClient(app.ctx, app.cfg.Sheets.CredentialsFile)
				if err != nil {
					return fmt.Errorf("failed to create sheets client: %w", err)
				}
				syncer := sheetsync.NewSyncer(client, app.store, app.clock, &app.cfg.Sheets, app.logger)
				go func() {
					if err := syncer.Run(app.ctx); err != nil {
						app.logger.Error("Sheet sync scheduler stopped", zap.Error(err))
					}
				}()
			} else {
				app.logger.Info("No spreadsheet configured, sheet sync disabled")
			}

			app.logger.Info("Starting HTTP server", zap.String("addr", app.cfg.ListenAddr))
			if err := server.Router().Run(app.cfg.ListenAddr); err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		},
	}
}
