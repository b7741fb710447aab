// Package supplier parses vendor price-list CSVs into catalog entries.
// The files are semicolon-separated spreadsheets with arbitrary preamble
// rows before the column header, so parsing scans for a header landmark
// and tolerates junk rows.
package supplier

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	"github.com/MrJamesThe3rd/tilly/internal/encoding"
)

const (
	colName     = "Name"
	colCategory = "Category"
	colCost     = "Cost Price"
	colPrice    = "Selling Price"
	colQty      = "Quantity"
	colSupplier = "Supplier"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]catalog.CreateParams, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	var params []catalog.CreateParams

	headerFound := false

	idxName := -1
	idxCategory := -1
	idxCost := -1
	idxPrice := -1
	idxQty := -1
	idxSupplier := -1

	for _, row := range rows {
		if !headerFound {
			matches := 0

			for i, col := range row {
				switch strings.TrimSpace(col) {
				case colName:
					idxName = i
					matches++
				case colCategory:
					idxCategory = i
					matches++
				case colCost:
					idxCost = i
					matches++
				case colPrice:
					idxPrice = i
					matches++
				case colQty:
					idxQty = i
					matches++
				case colSupplier:
					idxSupplier = i
					matches++
				}
			}

			// Name plus a price column is enough to call it the header.
			if idxName != -1 && idxPrice != -1 && matches >= 2 {
				headerFound = true
			}

			continue
		}

		maxIdx := max(idxName, max(idxCategory, max(idxCost, max(idxPrice, max(idxQty, idxSupplier)))))
		if len(row) <= maxIdx {
			continue
		}

		name := strings.TrimSpace(row[idxName])
		if name == "" {
			continue
		}

		price, err := parseAmount(strings.TrimSpace(row[idxPrice]))
		if err != nil || price < 0 {
			// Footer or malformed row; skip rather than abort the file.
			continue
		}

		cost := int64(0)
		if idxCost != -1 {
			if c, err := parseAmount(strings.TrimSpace(row[idxCost])); err == nil && c >= 0 {
				cost = c
			}
		}

		qty := int64(0)
		if idxQty != -1 {
			if q, err := strconv.ParseInt(strings.TrimSpace(row[idxQty]), 10, 64); err == nil && q >= 0 {
				qty = q
			}
		}

		category := ""
		if idxCategory != -1 {
			category = strings.TrimSpace(row[idxCategory])
		}

		supplierName := ""
		if idxSupplier != -1 {
			supplierName = strings.TrimSpace(row[idxSupplier])
		}

		params = append(params, catalog.CreateParams{
			Name:         name,
			Category:     category,
			CostPrice:    cost,
			SellingPrice: price,
			Quantity:     qty,
			Supplier:     supplierName,
		})
	}

	return params, nil
}
