package cli

import (
	"strings"
	"time"

	"github.com/pankajredekar/productsvc/internal/console"
	"github.com/pankajredekar/productsvc/internal/runner"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show migration status",
	Long:  "Shows all applied and pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := console.New(cmd.OutOrStdout())

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		run, ver, err := a.migrationRunner(cmd.Context())
		if err != nil {
			return err
		}

		statuses, err := run.Status(cmd.Context())
		if err != nil {
			return err
		}

		current, err := ver.LatestVersion(cmd.Context())
		if err != nil {
			return err
		}
		if current == "" {
			current = "(none)"
		}

		var applied, pending []runner.Status
		for _, s := range statuses {
			if s.AppliedAt != nil {
				applied = append(applied, s)
			} else {
				pending = append(pending, s)
			}
		}

		rule := strings.Repeat("=", 60)
		out.Plain("\n%s", rule)
		out.Plain("Migration Status")
		out.Plain("%s", rule)
		out.Plain("Current version: %s", current)

		if len(applied) > 0 {
			out.Plain("\n✓ Applied Migrations:")
			for _, s := range applied {
				out.Plain("  %s - %s (%s)", s.Version, s.Name, s.AppliedAt.Format(time.RFC3339))
			}
		} else {
			out.Plain("\n✓ Applied Migrations: (none)")
		}

		if len(pending) > 0 {
			out.Plain("\n○ Pending Migrations:")
			for _, s := range pending {
				out.Plain("  %s - %s", s.Version, s.Name)
			}
		} else {
			out.Plain("\n○ Pending Migrations: (none)")
		}

		out.Plain("")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
