package cli

import (
	"context"
	"fmt"

	"github.com/pankajredekar/productsvc/internal/config"
	"github.com/pankajredekar/productsvc/internal/console"
	"github.com/pankajredekar/productsvc/internal/database"
	"github.com/pankajredekar/productsvc/internal/logging"
	"github.com/pankajredekar/productsvc/internal/migrations"
	"github.com/pankajredekar/productsvc/internal/runner"
	"github.com/pankajredekar/productsvc/internal/versioner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const defaultConfigPath = "products.yml"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "products",
	Short:         "Product catalog service",
	Long:          "Serves the product catalog over HTTP and manages its database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the YAML config file")
}

// Execute runs the CLI
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		console.New(rootCmd.ErrOrStderr()).Error("%v", err)
		return err
	}
	return nil
}

// app holds what every database-backed command needs.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DatabaseURL, logger, cfg.DBDebug)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: logger, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.WithError(err).Warn("Failed to close database")
	}
}

// migrationRunner prepares the version table and returns a runner over the
// registered migrations.
func (a *app) migrationRunner(ctx context.Context) (*runner.Runner, *versioner.Versioner, error) {
	ver := versioner.NewVersioner(a.db, a.cfg.MigrationTable)
	if err := ver.Initialize(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize version table: %w", err)
	}
	return runner.NewRunner(a.db, migrations.Registry(), ver, a.log), ver, nil
}
