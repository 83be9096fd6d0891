package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry      = "entry"      // entrada: stock += quantity
	MovementTypeExit       = "exit"       // salida: stock -= quantity
	MovementTypeAdjustment = "adjustment" // ajuste: Quantity guarda el delta aplicado (nuevo - anterior)
)

// StockMovement es una fila del libro de movimientos (append-only).
// Nunca se edita ni se elimina; la suma de deltas con signo de un producto
// debe igualar su CurrentStock.
type StockMovement struct {
	ID           string
	ProductID    string
	MovementType string
	Quantity     int    // siempre positivo para entry/exit; delta con signo para adjustment
	Reason       string // pista de auditoría: referencia al pedido, archivo importado, etc.
	UserID       string // vacío = sistema (pedidos públicos, webhooks)
	CreatedAt    time.Time
}

// SignedDelta devuelve el efecto del movimiento sobre el stock.
func (m *StockMovement) SignedDelta() int {
	switch m.MovementType {
	case MovementTypeEntry:
		return m.Quantity
	case MovementTypeExit:
		return -m.Quantity
	case MovementTypeAdjustment:
		return m.Quantity
	}
	return 0
}
