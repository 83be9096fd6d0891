package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// CurrentStock es el stock autoritativo; solo se modifica dentro de la misma
// transacción que registra el StockMovement correspondiente.
// Un producto referenciado por movimientos o pedidos nunca se elimina: se desactiva.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	SalePrice    decimal.Decimal
	CostPrice    decimal.Decimal
	CurrentStock int // invariante: >= 0
	MinimumStock int
	Unit         string // UN, KG, CX, ...
	CategoryID   string
	SupplierID   string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
