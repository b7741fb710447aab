package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	"github.com/MrJamesThe3rd/tilly/internal/importer/supplier"
)

type Service struct {
	supplierParser Parser
}

func NewService() *Service {
	return &Service{
		supplierParser: supplier.New(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]catalog.CreateParams, error) {
	var parser Parser

	switch format {
	case FormatSupplierCSV:
		parser = s.supplierParser
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return parser.Parse(r)
}
