package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/internal/export"
)

func fixture() []models.Product {
	return []models.Product{
		{
			ID:        primitive.NewObjectID(),
			Name:      "Wireless Keyboard",
			SKU:       "KB-01",
			Price:     49.9,
			Quantity:  25,
			Status:    models.StatusAvailable,
			Category:  "Electronics",
			Supplier:  "Acme Supply Co",
			CreatedAt: time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        primitive.NewObjectID(),
			Name:      "Laptop Stand",
			SKU:       "STAND-01",
			Price:     27,
			Quantity:  0,
			Status:    models.StatusStockOut,
			CreatedAt: time.Date(2026, 11, 23, 10, 0, 0, 0, time.UTC),
		},
	}
}

// ─── CSV ───

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.CSV(&buf, fixture()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, export.Header, rows[0])

	assert.Equal(t, []string{
		"Wireless Keyboard", "KB-01", "$49.90", "25",
		"Available", "Electronics", "Acme Supply Co", "3/7/2026",
	}, rows[1])

	// Unresolved references render as Unknown.
	assert.Equal(t, "Unknown", rows[2][5])
	assert.Equal(t, "Unknown", rows[2][6])
	assert.Equal(t, "$27.00", rows[2][2])
	assert.Equal(t, "11/23/2026", rows[2][7])
}

func TestCSVEmptySet(t *testing.T) {
	var buf bytes.Buffer
	err := export.CSV(&buf, nil)
	assert.ErrorIs(t, err, export.ErrNoRows)
	assert.Zero(t, buf.Len())
}

// ─── XLSX ───

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.XLSX(&buf, fixture()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, export.Header, rows[0])
	assert.Equal(t, "Wireless Keyboard", rows[1][0])
	assert.Equal(t, "KB-01", rows[1][1])
	assert.Equal(t, "Available", rows[1][4])
	assert.Equal(t, "Unknown", rows[2][5])

	// Price is a raw number in spreadsheet form.
	price, err := f.GetCellValue(export.SheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "49.9", price)
}

func TestXLSXEmptySet(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, export.XLSX(&buf, nil), export.ErrNoRows)
}

// ─── Filename ───

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "stockly-products-2026-08-30.csv", export.Filename("csv", now))
	assert.Equal(t, "stockly-products-2026-08-30.xlsx", export.Filename("xlsx", now))
}
