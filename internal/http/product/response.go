package product

import (
	"time"

	"github.com/MrJamesThe3rd/tilly/internal/catalog"
)

type productResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	CostPrice    int64      `json:"cost_price"`
	SellingPrice int64      `json:"selling_price"`
	Quantity     int64      `json:"quantity"`
	Category     string     `json:"category"`
	Supplier     string     `json:"supplier,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
}

func toResponse(p *catalog.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Quantity:     p.Quantity,
		Category:     p.Category,
		Supplier:     p.Supplier,
		ExpiryDate:   p.ExpiryDate,
	}
}

func toResponseList(products []*catalog.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}
