package repository

import "github.com/jhoicas/Distribuidora-api/internal/domain/entity"

// OrderRepository puerto de persistencia para pedidos y sus líneas.
// GetForUpdate bloquea la cabecera: la reconciliación de pagos lo usa para
// serializar webhooks concurrentes sobre el mismo pedido.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetForUpdate(id string) (*entity.Order, error)
	GetByToken(token string) (*entity.Order, error)
	GetItems(orderID string) ([]*entity.OrderItem, error)
	List(status string, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
	// UpdatePayment persiste status, payment_id, payment_status y payment_date.
	UpdatePayment(order *entity.Order) error
	// SetPreference guarda la preferencia creada en la pasarela.
	SetPreference(id, preferenceID, paymentMethod, paymentStatus string) error
}
