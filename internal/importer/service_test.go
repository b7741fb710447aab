package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tilly/internal/importer"
)

func TestService_Import_SupplierCSV(t *testing.T) {
	svc := importer.NewService()

	input := "Name;Selling Price;Quantity\nEspresso Beans;9,99;50\n"

	params, err := svc.Import(importer.FormatSupplierCSV, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Espresso Beans", params[0].Name)
	assert.Equal(t, int64(999), params[0].SellingPrice)
}

func TestService_Import_UnknownFormat(t *testing.T) {
	svc := importer.NewService()

	params, err := svc.Import("xml", strings.NewReader(""))
	assert.Error(t, err)
	assert.Nil(t, params)
}
