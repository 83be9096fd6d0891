package orders

import (
	"context"

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor de pedidos:
// cabecera + líneas + débito de stock + movimientos se confirman o revierten juntos.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// Notifier puerto de notificaciones post-commit. Las implementaciones son
// best-effort: registran sus fallos y nunca propagan error al caso de uso.
type Notifier interface {
	OrderConfirmation(ctx context.Context, order *entity.Order, items []*entity.OrderItem, customer *entity.Customer)
	OrderDelivered(ctx context.Context, order *entity.Order, customer *entity.Customer)
}
