package dto

import "time"

// AssignDeliveryRequest body para POST /api/deliveries/assign/:order_id.
type AssignDeliveryRequest struct {
	DeliveryUserID string `json:"delivery_user_id"`
	Notes          string `json:"notes"`
}

// UpdateDeliveryStatusRequest body para PATCH /api/deliveries/:id/status.
type UpdateDeliveryStatusRequest struct {
	Status        string `json:"status"`
	DeliveryProof string `json:"delivery_proof"`
	Notes         string `json:"notes"`
}

// DeliveryResponse representación pública de la entrega.
type DeliveryResponse struct {
	ID             string     `json:"id"`
	OrderID        string     `json:"order_id"`
	DeliveryUserID string     `json:"delivery_user_id,omitempty"`
	Status         string     `json:"status"`
	DeliveryProof  string     `json:"delivery_proof,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
