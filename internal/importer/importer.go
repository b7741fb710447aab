package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tilly/internal/catalog"
)

type Format string

const (
	FormatSupplierCSV Format = "supplier"
)

type Parser interface {
	Parse(r io.Reader) ([]catalog.CreateParams, error)
}
