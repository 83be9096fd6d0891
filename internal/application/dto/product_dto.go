package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. El stock inicial entra
// por un movimiento entry, no por este endpoint.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	MinimumStock int             `json:"minimum_stock"`
	Unit         string          `json:"unit"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	SalePrice    *decimal.Decimal `json:"sale_price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	MinimumStock *int             `json:"minimum_stock"`
	Unit         *string          `json:"unit"`
	CategoryID   *string          `json:"category_id"`
	SupplierID   *string          `json:"supplier_id"`
}

// ProductResponse representación pública del producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	CurrentStock int             `json:"current_stock"`
	MinimumStock int             `json:"minimum_stock"`
	Unit         string          `json:"unit"`
	CategoryID   string          `json:"category_id,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PublicProductResponse producto visible en el menú público (sin costos).
type PublicProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock_quantity"`
}
