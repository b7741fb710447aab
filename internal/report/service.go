// Package report renders sales reports as CSV and PDF.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/MrJamesThe3rd/tilly/internal/money"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
)

const dateFormat = "01/02/2006 15:04:05"

var csvHeader = []string{"Sale ID", "Product ID", "Product Name", "Category", "Quantity", "Total Price", "Sale Date"}

type Service struct {
	sales *sale.Service
}

func NewService(sales *sale.Service) *Service {
	return &Service{sales: sales}
}

type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Sales returns the rows a report over the filter would contain.
func (s *Service) Sales(ctx context.Context, filter Filter) ([]*sale.Sale, error) {
	if filter.StartDate != nil && filter.EndDate != nil {
		return s.sales.ListBetween(ctx, *filter.StartDate, *filter.EndDate)
	}

	return s.sales.List(ctx)
}

// ExportCSV writes a timestamped CSV report into dir and returns its path.
func (s *Service) ExportCSV(ctx context.Context, filter Filter, dir string) (string, error) {
	return s.export(ctx, filter, dir, "csv", WriteCSV)
}

// ExportPDF writes a timestamped PDF report into dir and returns its path.
func (s *Service) ExportPDF(ctx context.Context, filter Filter, dir string) (string, error) {
	return s.export(ctx, filter, dir, "pdf", WritePDF)
}

func (s *Service) export(ctx context.Context, filter Filter, dir, ext string, write func(io.Writer, []*sale.Sale) error) (string, error) {
	sales, err := s.Sales(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("listing sales: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("sales_report_%s.%s", time.Now().Format("20060102_150405"), ext))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := write(f, sales); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return path, nil
}

// WriteCSV emits one row per sale under the fixed report header. Fields
// containing a comma, quote, or newline are wrapped in double quotes with
// embedded quotes doubled.
func WriteCSV(w io.Writer, sales []*sale.Sale) error {
	var sb strings.Builder

	sb.WriteString(strings.Join(csvHeader, ","))
	sb.WriteByte('\n')

	for _, sl := range sales {
		row := []string{
			fmt.Sprintf("%d", sl.ID),
			fmt.Sprintf("%d", sl.ProductID),
			escapeCSV(sl.ProductName),
			escapeCSV(sl.Category),
			fmt.Sprintf("%d", sl.Quantity),
			money.FormatCents(sl.TotalPrice),
			sl.SaleDate.Format(dateFormat),
		}
		sb.WriteString(strings.Join(row, ","))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// WritePDF renders the same rows as a table with a summary footer.
func WritePDF(w io.Writer, sales []*sale.Sale) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Sales Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated: "+time.Now().Format(dateFormat), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{20, 25, 70, 45, 25, 35, 50}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)

	for i, h := range csvHeader {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)

	var totalUnits, totalRevenue int64

	for _, sl := range sales {
		name := sl.ProductName
		if name == "" {
			name = "N/A"
		}

		category := sl.Category
		if category == "" {
			category = "N/A"
		}

		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", sl.ID), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", sl.ProductID), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 7, name, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[3], 7, category, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%d", sl.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 7, "$"+money.FormatCents(sl.TotalPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 7, sl.SaleDate.Format(dateFormat), "1", 1, "", false, 0, "")

		totalUnits += sl.Quantity
		totalRevenue += sl.TotalPrice
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Sales: %d", len(sales)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Items Sold: %d", totalUnits), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, "Total Revenue: $"+money.FormatCents(totalRevenue), "", 1, "", false, 0, "")

	return pdf.Output(w)
}

func escapeCSV(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
	}

	return value
}
