package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/order"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// StatusUseCase aplica cambios manuales de estado sobre un pedido.
// Todas las transiciones pasan por la tabla de order.CanTransition; la
// cancelación además devuelve el stock descontado dentro de la misma tx.
type StatusUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
}

func NewStatusUseCase(txRunner TxRunner, orderRepo repository.OrderRepository) *StatusUseCase {
	return &StatusUseCase{txRunner: txRunner, orderRepo: orderRepo}
}

// Update cambia el estado del pedido. Devuelve el pedido actualizado.
func (uc *StatusUseCase) Update(ctx context.Context, orderID, newStatus, userID string) (*entity.Order, error) {
	if !order.ValidStatus(newStatus) {
		return nil, fmt.Errorf("estado %q desconocido: %w", newStatus, domain.ErrInvalidInput)
	}

	var updated *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		_ repository.CustomerRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
		}
		if !order.CanTransition(ord.Status, newStatus) {
			return &domain.IllegalTransitionError{From: ord.Status, To: newStatus}
		}

		if newStatus == entity.OrderStatusCancelled {
			if err := RestoreStock(orderRepo, productRepo, movRepo, ord, userID); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(ord.ID, newStatus); err != nil {
			return err
		}
		ord.Status = newStatus
		updated = ord
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RestoreStock devuelve al inventario las cantidades de cada línea del pedido,
// registrando un movimiento de entrada por línea. Debe ejecutarse dentro de la
// misma transacción que el cambio de estado; la reconciliación de pagos lo
// reutiliza cuando la pasarela rechaza el pago.
func RestoreStock(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	ord *entity.Order,
	userID string,
) error {
	items, err := orderRepo.GetItems(ord.ID)
	if err != nil {
		return err
	}
	for _, item := range items {
		product, err := productRepo.GetForUpdate(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			// Producto borrado físicamente: no hay fila que reponer.
			continue
		}
		if err := productRepo.UpdateStock(product.ID, product.CurrentStock+item.Quantity); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:           uuid.NewString(),
			ProductID:    product.ID,
			MovementType: entity.MovementTypeEntry,
			Quantity:     item.Quantity,
			Reason:       fmt.Sprintf("Cancelación - Pedido #%s", ord.ID),
			UserID:       userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
	}
	return nil
}
