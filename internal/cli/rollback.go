package cli

import (
	"fmt"
	"strconv"

	"github.com/pankajredekar/productsvc/internal/console"
	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback [n]",
	Short: "Rollback migrations",
	Long:  "Rolls back the last N migrations (default: 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := console.New(cmd.OutOrStdout())

		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid number: %q", args[0])
			}
		}

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		run, ver, err := a.migrationRunner(cmd.Context())
		if err != nil {
			return err
		}

		appliedCount, err := ver.AppliedCount(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get applied count: %w", err)
		}
		if appliedCount == 0 {
			out.Warning("No migrations to rollback")
			return nil
		}
		if int64(n) > appliedCount {
			n = int(appliedCount)
		}

		out.Info("Rolling back %d migration(s)...", n)
		rolledBack, err := run.Rollback(cmd.Context(), n)
		for _, m := range rolledBack {
			out.Plain("  %s - %s", m.Version(), m.Name())
		}
		if err != nil {
			return fmt.Errorf("failed to rollback: %w", err)
		}

		out.Success("Rolled back %d migration(s)", len(rolledBack))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}
