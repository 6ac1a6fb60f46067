package cli

import (
	"fmt"
	"os"

	"github.com/pankajredekar/productsvc/internal/config"
	"github.com/pankajredekar/productsvc/internal/console"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Creates products.yml (or the file named by --config) with default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := console.New(cmd.OutOrStdout())
		if console.FileExists(configPath) {
			out.Warning("%s already exists", configPath)
			return nil
		}

		data, err := yaml.Marshal(config.Default())
		if err != nil {
			return fmt.Errorf("failed to generate config: %w", err)
		}

		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		out.Success("Created %s", configPath)
		out.Info("Edit database_url, then run 'products migrate'")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
