package supplier_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tilly/internal/importer/supplier"
)

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Acme Wholesale Price List;;;;;",
		"Generated 2026-08-01;;;;;",
		";;;;;",
		"Name;Category;Cost Price;Selling Price;Quantity;Supplier",
		"Espresso Beans;Coffee;5,00;9,99;50;Acme",
		"Filters;Coffee;1,25;2,50;200;Acme",
		"",
		"Total;;;;;",
	}, "\n")

	p := supplier.New()

	params, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Espresso Beans", params[0].Name)
	assert.Equal(t, "Coffee", params[0].Category)
	assert.Equal(t, int64(500), params[0].CostPrice)
	assert.Equal(t, int64(999), params[0].SellingPrice)
	assert.Equal(t, int64(50), params[0].Quantity)
	assert.Equal(t, "Acme", params[0].Supplier)

	assert.Equal(t, "Filters", params[1].Name)
	assert.Equal(t, int64(250), params[1].SellingPrice)
}

func TestParser_Parse_PlainDecimalAmounts(t *testing.T) {
	input := strings.Join([]string{
		"Name;Selling Price;Quantity",
		"Mug;12.50;10",
	}, "\n")

	p := supplier.New()

	params, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, int64(1250), params[0].SellingPrice)
}

func TestParser_Parse_ThousandsSeparator(t *testing.T) {
	input := strings.Join([]string{
		"Name;Selling Price",
		"Espresso Machine;1.234,56",
	}, "\n")

	p := supplier.New()

	params, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, int64(123456), params[0].SellingPrice)
}

func TestParser_Parse_SkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"Name;Selling Price;Quantity",
		"Espresso Beans;9,99;50",
		";1,00;5",
		"Broken Row;not-a-price;5",
		"Filters;2,50;abc",
	}, "\n")

	p := supplier.New()

	params, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Espresso Beans", params[0].Name)

	// Unparseable quantity falls back to zero rather than dropping the row.
	assert.Equal(t, "Filters", params[1].Name)
	assert.Equal(t, int64(0), params[1].Quantity)
}

func TestParser_Parse_NoHeader(t *testing.T) {
	input := "just some text\nwithout any header\n"

	p := supplier.New()

	params, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, params)
}
