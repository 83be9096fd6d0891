package repository

import "github.com/jhoicas/Distribuidora-api/internal/domain/entity"

// PaymentEventRepository puerto del registro de notificaciones de pago aplicadas.
type PaymentEventRepository interface {
	// Insert registra el evento. Devuelve false si la clave
	// (order_id, payment_id, mapped_status) ya existía: el webhook es un
	// duplicado y no debe volver a aplicarse.
	Insert(event *entity.PaymentEvent) (bool, error)
	ListByOrder(orderID string) ([]*entity.PaymentEvent, error)
}
