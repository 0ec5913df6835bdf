package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chupohan/brigade-duty/internal/config"
	"github.com/chupohan/brigade-duty/pkg/core/civiltime"
	"github.com/chupohan/brigade-duty/pkg/db"
	"github.com/chupohan/brigade-duty/pkg/memstore"
	"github.com/chupohan/brigade-duty/pkg/postgres"
	"github.com/chupohan/brigade-duty/pkg/utils/logging"
)

// App holds the application dependencies.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	store  db.Store
	clock  *civiltime.Clock
	logger *zap.Logger

	closeStore func()
}

var (
	env        string
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "brigade-duty",
		Short: "Fire-brigade volunteer duty tracker",
		Long:  `Tracks volunteer sign-in/sign-out, rescue case records and monthly duty statistics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.closeStore != nil {
					app.closeStore()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name used for log files")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to brigade_config.yaml lookup)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(dailyCmd())
	rootCmd.AddCommand(monthlyCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(syncSheetsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(listUsersCmd())
	rootCmd.AddCommand(addUserCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, store and clock.
func initApp() error {
	ctx := context.Background()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Local development keeps DATABASE_URL in a .env file.
	godotenv.Load()

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Info("Configuration loaded", zap.String("timezone", cfg.Timezone))

	clock, err := civiltime.NewClock(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("failed to create clock: %w", err)
	}

	var store db.Store
	closeStore := func() {}
	if cfg.DatabaseURL != "" {
		pg, err := postgres.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pg.RunMigrations(ctx); err != nil {
			pg.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("Database ready")
		store = pg
		closeStore = pg.Close
	} else {
		logger.Warn("No databaseURL configured, using in-memory store")
		store = memstore.New()
	}

	app = &App{
		ctx:        ctx,
		cfg:        cfg,
		store:      db.NewGuard(store, cfg.TestAccounts),
		clock:      clock,
		logger:     logger,
		closeStore: closeStore,
	}
	return nil
}
