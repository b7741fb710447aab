package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tilly/internal/report"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
)

func TestWriteCSV(t *testing.T) {
	sales := []*sale.Sale{
		{
			ID:          1,
			ProductID:   1,
			ProductName: "Espresso Beans",
			Category:    "Coffee",
			Quantity:    5,
			TotalPrice:  4995,
			SaleDate:    time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sales))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "Sale ID,Product ID,Product Name,Category,Quantity,Total Price,Sale Date", lines[0])
	assert.Equal(t, "1,1,Espresso Beans,Coffee,5,49.95,08/30/2026 14:30:00", lines[1])
}

func TestWriteCSV_EscapesSpecialCharacters(t *testing.T) {
	sales := []*sale.Sale{
		{
			ID:          2,
			ProductID:   3,
			ProductName: `Mugs, "Deluxe"`,
			Category:    "Kitchen",
			Quantity:    1,
			TotalPrice:  1500,
			SaleDate:    time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sales))

	assert.Contains(t, buf.String(), `"Mugs, ""Deluxe"""`)
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, nil))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1)
}

func TestWritePDF(t *testing.T) {
	sales := []*sale.Sale{
		{
			ID:          1,
			ProductID:   1,
			ProductName: "Espresso Beans",
			Category:    "Coffee",
			Quantity:    5,
			TotalPrice:  4995,
			SaleDate:    time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:       2,
			Quantity: 1,
			SaleDate: time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WritePDF(&buf, sales))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}
