package dto

import "github.com/shopspring/decimal"

// LowStockAlertResponse producto por debajo de su stock mínimo.
type LowStockAlertResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
	Unit         string `json:"unit"`
}

// SalesSummaryResponse totales de ventas de un período.
type SalesSummaryResponse struct {
	From           string          `json:"from"`
	To             string          `json:"to"`
	OrderCount     int             `json:"order_count"`
	DeliveredCount int             `json:"delivered_count"`
	CancelledCount int             `json:"cancelled_count"`
	GrossRevenue   decimal.Decimal `json:"gross_revenue"`
	UnitsSold      int             `json:"units_sold"`
}

// TopProductResponse producto más vendido del período.
type TopProductResponse struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}
