package entity

import "time"

// PaymentEvent registra una notificación de la pasarela ya aplicada a un pedido.
// La clave (OrderID, PaymentID, MappedStatus) es única: reintentos del webhook
// con el mismo resultado no vuelven a mutar el pedido ni a notificar.
type PaymentEvent struct {
	ID            string
	OrderID       string
	PaymentID     string
	GatewayStatus string // estado crudo reportado por la pasarela
	MappedStatus  string // payment_status aplicado al pedido
	CreatedAt     time.Time
}
