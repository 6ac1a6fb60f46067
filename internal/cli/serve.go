package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/pankajredekar/productsvc/internal/api"
	"github.com/pankajredekar/productsvc/internal/database"
	"github.com/pankajredekar/productsvc/internal/product"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const readHeaderTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Serves the product catalog over HTTP until SIGINT or SIGTERM",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if a.cfg.AutoMigrate {
			run, _, err := a.migrationRunner(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := run.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
		}

		if a.cfg.LogLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		service := product.NewService(product.NewGormStore(a.db), a.log)
		ping := func(ctx context.Context) error { return database.Ping(ctx, a.db) }
		srv := &http.Server{
			Addr:              a.cfg.HTTPAddr,
			Handler:           api.NewRouter(service, ping, a.log),
			ReadHeaderTimeout: readHeaderTimeout,
		}

		serverErr := make(chan error, 1)
		go func() {
			a.log.WithField("addr", srv.Addr).Info("HTTP server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		wait := gfshutdown.GracefulShutdown(
			cmd.Context(),
			a.cfg.ShutdownTimeout,
			map[string]gfshutdown.Operation{
				"http-server": func(ctx context.Context) error {
					a.log.Info("Graceful shutdown initiated...")
					return srv.Shutdown(ctx)
				},
			},
		)

		select {
		case err := <-serverErr:
			return fmt.Errorf("http server failed: %w", err)
		case exitCode := <-wait:
			a.log.WithFields(logrus.Fields{"exit_code": exitCode}).Info("Server stopped")
			if exitCode != 0 {
				return fmt.Errorf("shutdown finished with exit code %d", exitCode)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
