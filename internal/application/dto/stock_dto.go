package dto

import "time"

// RegisterMovementRequest body para POST /api/stock/movements.
// Para adjustment, Quantity es el stock objetivo (valor absoluto); el movimiento
// almacenado registra el delta realmente aplicado.
type RegisterMovementRequest struct {
	ProductID    string `json:"product_id"`
	MovementType string `json:"movement_type"` // entry, exit, adjustment
	Quantity     int    `json:"quantity"`
	Reason       string `json:"reason"`
}

// StockMovementResponse una fila del libro de movimientos.
type StockMovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	MovementType string    `json:"movement_type"`
	Quantity     int       `json:"quantity"`
	Reason       string    `json:"reason"`
	UserID       string    `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImportRowRequest una fila ya parseada de la planilla de importación.
// Columnas mínimas: sku, name, sale_price, quantity; el resto es opcional.
type ImportRowRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SalePrice    string `json:"sale_price"`
	CostPrice    string `json:"cost_price"`
	Quantity     int    `json:"quantity"`
	MinimumStock int    `json:"minimum_stock"`
	Unit         string `json:"unit"`
	Category     string `json:"category"`
	Supplier     string `json:"supplier"`
}

// ImportResultResponse resumen de una importación de planilla.
type ImportResultResponse struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}
