// Package importer loads products in bulk from an Excel workbook.
//
// The sheet's first row is a header. Columns are read by position: name in
// column A and price in column B. Invalid rows are skipped and reported; they
// never abort the import.
package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pankajredekar/productsvc/internal/product"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Creator persists one product.
type Creator interface {
	Create(ctx context.Context, fields product.Fields) (*product.Product, error)
}

// RowError explains why a row was skipped. Row is 1-based as shown in Excel.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Report summarizes an import.
type Report struct {
	Created []*product.Product
	Skipped []RowError
}

type Importer struct {
	creator Creator
	log     logrus.FieldLogger
}

func New(creator Creator, logger logrus.FieldLogger) *Importer {
	return &Importer{creator: creator, log: logger}
}

// Import reads sheet from the workbook in r and creates a product per valid
// row. An empty sheet name selects the first sheet. A persistence error stops
// the import and is returned with the partial report.
func (im *Importer) Import(ctx context.Context, r io.Reader, sheet string) (*Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	report := &Report{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1

		fields, reason := parseRow(row)
		if reason != "" {
			if isBlank(row) {
				continue
			}
			im.log.WithField("row", rowNum).Warnf("Skipping row: %s", reason)
			report.Skipped = append(report.Skipped, RowError{Row: rowNum, Reason: reason})
			continue
		}

		p, err := im.creator.Create(ctx, fields)
		if err != nil {
			return report, fmt.Errorf("failed to import row %d: %w", rowNum, err)
		}
		report.Created = append(report.Created, p)
	}

	im.log.WithFields(logrus.Fields{
		"sheet":   sheet,
		"created": len(report.Created),
		"skipped": len(report.Skipped),
	}).Info("Import finished")
	return report, nil
}

func parseRow(row []string) (product.Fields, string) {
	if len(row) < 2 {
		return product.Fields{}, "expected name and price columns"
	}

	name := strings.TrimSpace(row[0])
	if name == "" {
		return product.Fields{}, "name is empty"
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return product.Fields{}, fmt.Sprintf("invalid price %q", row[1])
	}
	if price < 0 {
		return product.Fields{}, fmt.Sprintf("negative price %v", price)
	}

	return product.Fields{Name: name, Price: price}, ""
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
