package repository

import "github.com/jhoicas/Distribuidora-api/internal/domain/entity"

// DeliveryRepository puerto de persistencia para entregas (una por pedido).
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	GetByOrderID(orderID string) (*entity.Delivery, error)
	List(status, deliveryUserID string, limit, offset int) ([]*entity.Delivery, error)
	Update(delivery *entity.Delivery) error
}
