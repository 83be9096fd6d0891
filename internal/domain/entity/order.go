package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivered = "delivered" // terminal
	OrderStatusCancelled = "cancelled" // terminal
)

// Estados del pago asociado al pedido.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Métodos de pago reconocidos.
const (
	PaymentMethodCash        = "cash"
	PaymentMethodCard        = "card"
	PaymentMethodPix         = "pix"
	PaymentMethodBankSlip    = "bank_slip"
	PaymentMethodMercadoPago = "mercadopago"
)

// ValidPaymentMethod verifica que el método de pago sea uno de los reconocidos.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodPix,
		PaymentMethodBankSlip, PaymentMethodMercadoPago:
		return true
	}
	return false
}

// Order es la cabecera del pedido. Total siempre se recalcula al confirmar
// (suma de subtotales de línea a 2 decimales), nunca se confía en el cliente.
type Order struct {
	ID            string
	CustomerID    string
	UserID        string // staff que creó el pedido; vacío = pedido público (sistema)
	Total         decimal.Decimal
	PaymentMethod string
	Status        string
	Notes         string

	// Campos de la pasarela de pago.
	PaymentID     string
	PaymentStatus string
	PaymentDate   *time.Time
	PreferenceID  string

	// Token opaco para consulta pública de estado sin autenticación.
	// Se genera una sola vez al crear el pedido y nunca se reutiliza.
	OrderToken string

	CreatedAt time.Time
}

// OrderItem es una línea del pedido. UnitPrice es un snapshot al momento del
// pedido: no cambia aunque el precio del producto cambie después.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int             // > 0
	UnitPrice decimal.Decimal // snapshot
	Discount  decimal.Decimal // 0 <= Discount <= Quantity*UnitPrice
}

// Subtotal devuelve quantity*unit_price - discount.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}
