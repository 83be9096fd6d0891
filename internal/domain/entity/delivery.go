package entity

import "time"

// Estados de la entrega.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// ValidDeliveryStatus verifica que el estado sea uno de los reconocidos.
func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit,
		DeliveryStatusDelivered, DeliveryStatusFailed:
		return true
	}
	return false
}

// Delivery vincula un pedido con un repartidor. A lo sumo una entrega por pedido;
// tras una entrega fallida el mismo registro se reasigna (no se crea otro).
type Delivery struct {
	ID             string
	OrderID        string
	DeliveryUserID string // vacío hasta la asignación
	Status         string
	DeliveryProof  string // ruta de foto o firma
	Notes          string
	DeliveredAt    *time.Time
	CreatedAt      time.Time
}
