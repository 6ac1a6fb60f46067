package cli

import (
	"fmt"
	"os"

	"github.com/pankajredekar/productsvc/internal/console"
	"github.com/pankajredekar/productsvc/internal/importer"
	"github.com/pankajredekar/productsvc/internal/product"
	"github.com/spf13/cobra"
)

var importSheet string

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import products from an Excel file",
	Long:  "Creates a product for every valid row (name, price) of the sheet. The first row is a header",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := console.New(cmd.OutOrStdout())

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		sheet := importSheet
		if sheet == "" {
			sheet = a.cfg.ImportSheet
		}

		service := product.NewService(product.NewGormStore(a.db), a.log)
		report, err := importer.New(service, a.log).Import(cmd.Context(), f, sheet)
		if report != nil {
			for _, skipped := range report.Skipped {
				out.Warning("Skipped %s", skipped)
			}
		}
		if err != nil {
			return err
		}

		out.Success("Imported %d product(s), skipped %d row(s)", len(report.Created), len(report.Skipped))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "sheet to read (defaults to import_sheet from config)")
	rootCmd.AddCommand(importCmd)
}
