package cli

import (
	"fmt"

	"github.com/pankajredekar/productsvc/internal/console"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Long:  "Applies all migrations that haven't been applied yet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := console.New(cmd.OutOrStdout())

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		run, _, err := a.migrationRunner(cmd.Context())
		if err != nil {
			return err
		}

		pending, err := run.Pending(cmd.Context())
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			out.Success("No pending migrations")
			return nil
		}

		out.Info("Applying %d migration(s)...", len(pending))
		applied, err := run.Migrate(cmd.Context())
		for _, m := range applied {
			out.Plain("  %s - %s", m.Version(), m.Name())
		}
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}

		out.Success("Applied %d migration(s)", len(applied))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
