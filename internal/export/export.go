// Package export serializes a filtered product set to CSV or spreadsheet
// form. Exports always operate on the filtered set, never the paginated
// window, and an empty set is a typed error so the caller can show a
// distinct "nothing to export" message instead of serving an empty file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shashiranjanraj/stockly/app/models"
)

// ErrNoRows is returned when the filtered set is empty.
var ErrNoRows = errors.New("export: no products match the current filters")

// SheetName is the single sheet written to spreadsheet exports.
const SheetName = "Products"

// Header is the logical column set shared by both formats.
var Header = []string{
	"Product Name", "SKU", "Price", "Quantity",
	"Status", "Category", "Supplier", "Created Date",
}

// Column width hints for the spreadsheet, one per Header column.
var columnWidths = []float64{20, 15, 10, 10, 12, 15, 15, 12}

// Filename builds the dated download name, e.g.
// stockly-products-2026-08-30.csv.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("stockly-products-%s.%s", now.Format("2006-01-02"), format)
}

func displayName(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func createdDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// CSV writes one row per product with the price pre-formatted as $X.XX.
func CSV(w io.Writer, products []models.Product) error {
	if len(products) == 0 {
		return ErrNoRows
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: csv header: %w", err)
	}

	for _, p := range products {
		row := []string{
			p.Name,
			p.SKU,
			fmt.Sprintf("$%.2f", p.Price),
			fmt.Sprintf("%d", p.Quantity),
			p.Status,
			displayName(p.Category),
			displayName(p.Supplier),
			createdDate(p.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: csv flush: %w", err)
	}
	return nil
}

// XLSX writes the same logical columns to a single "Products" sheet, with
// the price as a raw number so spreadsheet consumers can aggregate it.
func XLSX(w io.Writer, products []models.Product) error {
	if len(products) == 0 {
		return ErrNoRows
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("export: new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: drop default sheet: %w", err)
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("export: column width: %w", err)
		}
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("export: header row: %w", err)
	}

	for i, p := range products {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			p.Name,
			p.SKU,
			p.Price,
			p.Quantity,
			p.Status,
			displayName(p.Category),
			displayName(p.Supplier),
			createdDate(p.CreatedAt),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}
