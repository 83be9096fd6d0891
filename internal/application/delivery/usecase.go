package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/order"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta asignación y cambios de estado de entrega junto con la
// cascada sobre el pedido en una sola transacción.
type TxRunner interface {
	RunDelivery(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		deliveryRepo repository.DeliveryRepository,
	) error) error
}

// Notifier notificaciones post-commit, best-effort.
type Notifier interface {
	OrderDelivered(ctx context.Context, order *entity.Order, customer *entity.Customer)
}

// Actor identifica quién ejecuta la operación, para el control de acceso
// del repartidor (solo puede tocar sus propias entregas).
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) isStaff() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleManager
}

// UseCase gestiona el ciclo de entregas: asignación, tránsito y cierre.
type UseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	notifier     Notifier
}

func NewUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
	}
}

// Assign asigna un repartidor al pedido. El pedido pasa a preparing.
// Si existe una entrega previa fallida, se reasigna el mismo registro.
func (uc *UseCase) Assign(ctx context.Context, orderID string, req *dto.AssignDeliveryRequest) (*entity.Delivery, error) {
	courier, err := uc.userRepo.GetByID(req.DeliveryUserID)
	if err != nil {
		return nil, err
	}
	if courier == nil || !courier.Active || courier.Role != entity.RoleDelivery {
		return nil, fmt.Errorf("usuario %s: %w", req.DeliveryUserID, domain.ErrCourierNotFound)
	}

	var assigned *entity.Delivery
	err = uc.txRunner.RunDelivery(ctx, func(
		orderRepo repository.OrderRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
		}
		if ord.Status != entity.OrderStatusConfirmed && ord.Status != entity.OrderStatusPreparing {
			return fmt.Errorf("pedido en estado %s: %w", ord.Status, domain.ErrOrderNotReady)
		}

		existing, err := deliveryRepo.GetByOrderID(orderID)
		if err != nil {
			return err
		}
		switch {
		case existing == nil:
			assigned = &entity.Delivery{
				ID:             uuid.NewString(),
				OrderID:        orderID,
				DeliveryUserID: courier.ID,
				Status:         entity.DeliveryStatusPending,
				Notes:          req.Notes,
			}
			if err := deliveryRepo.Create(assigned); err != nil {
				return err
			}
		case existing.Status == entity.DeliveryStatusFailed:
			// Reintento: misma entrega, nuevo repartidor.
			existing.DeliveryUserID = courier.ID
			existing.Status = entity.DeliveryStatusPending
			existing.DeliveryProof = ""
			existing.DeliveredAt = nil
			existing.Notes = req.Notes
			if err := deliveryRepo.Update(existing); err != nil {
				return err
			}
			assigned = existing
		default:
			return fmt.Errorf("pedido %s: %w", orderID, domain.ErrAlreadyAssigned)
		}

		if ord.Status == entity.OrderStatusConfirmed {
			if err := orderRepo.UpdateStatus(ord.ID, entity.OrderStatusPreparing); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

// UpdateStatus cambia el estado de la entrega y aplica la cascada al pedido:
// delivered cierra el pedido con fecha y comprobante; failed lo devuelve a
// pending para reasignación.
func (uc *UseCase) UpdateStatus(ctx context.Context, deliveryID string, req *dto.UpdateDeliveryStatusRequest, actor Actor) (*entity.Delivery, error) {
	if !entity.ValidDeliveryStatus(req.Status) {
		return nil, fmt.Errorf("estado de entrega %q desconocido: %w", req.Status, domain.ErrInvalidInput)
	}

	var (
		updated        *entity.Delivery
		deliveredOrder *entity.Order
	)
	err := uc.txRunner.RunDelivery(ctx, func(
		orderRepo repository.OrderRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		dlv, err := deliveryRepo.GetByID(deliveryID)
		if err != nil {
			return err
		}
		if dlv == nil {
			return fmt.Errorf("entrega %s: %w", deliveryID, domain.ErrNotFound)
		}
		if !actor.isStaff() && dlv.DeliveryUserID != actor.UserID {
			return fmt.Errorf("la entrega pertenece a otro repartidor: %w", domain.ErrForbidden)
		}
		if dlv.Status == entity.DeliveryStatusDelivered {
			return fmt.Errorf("entrega ya cerrada: %w", domain.ErrConflict)
		}

		ord, err := orderRepo.GetForUpdate(dlv.OrderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return fmt.Errorf("pedido %s: %w", dlv.OrderID, domain.ErrNotFound)
		}

		dlv.Status = req.Status
		if req.Notes != "" {
			dlv.Notes = req.Notes
		}

		switch req.Status {
		case entity.DeliveryStatusDelivered:
			now := time.Now()
			dlv.DeliveredAt = &now
			dlv.DeliveryProof = req.DeliveryProof
			if !order.CanTransition(ord.Status, entity.OrderStatusDelivered) {
				return &domain.IllegalTransitionError{From: ord.Status, To: entity.OrderStatusDelivered}
			}
			if err := orderRepo.UpdateStatus(ord.ID, entity.OrderStatusDelivered); err != nil {
				return err
			}
			ord.Status = entity.OrderStatusDelivered
			deliveredOrder = ord
		case entity.DeliveryStatusFailed:
			// El pedido vuelve a pending para que alguien lo retome.
			if order.CanTransition(ord.Status, entity.OrderStatusPending) {
				if err := orderRepo.UpdateStatus(ord.ID, entity.OrderStatusPending); err != nil {
					return err
				}
			}
		}

		if err := deliveryRepo.Update(dlv); err != nil {
			return err
		}
		updated = dlv
		return nil
	})
	if err != nil {
		return nil, err
	}

	if deliveredOrder != nil && uc.notifier != nil {
		if customer, cerr := uc.customerRepo.GetByID(deliveredOrder.CustomerID); cerr == nil && customer != nil {
			uc.notifier.OrderDelivered(ctx, deliveredOrder, customer)
		}
	}
	return updated, nil
}

// Get devuelve una entrega por ID. El repartidor solo puede ver las suyas.
func (uc *UseCase) Get(deliveryID string, actor Actor) (*entity.Delivery, error) {
	dlv, err := uc.deliveryRepo.GetByID(deliveryID)
	if err != nil {
		return nil, err
	}
	if dlv == nil {
		return nil, fmt.Errorf("entrega %s: %w", deliveryID, domain.ErrNotFound)
	}
	if !actor.isStaff() && actor.Role == entity.RoleDelivery && dlv.DeliveryUserID != actor.UserID {
		return nil, fmt.Errorf("la entrega pertenece a otro repartidor: %w", domain.ErrForbidden)
	}
	return dlv, nil
}

// List devuelve entregas filtradas. Un repartidor solo ve su propia cola.
func (uc *UseCase) List(status string, actor Actor, page dto.PageRequest) ([]*entity.Delivery, error) {
	deliveryUserID := ""
	if actor.Role == entity.RoleDelivery {
		deliveryUserID = actor.UserID
	}
	return uc.deliveryRepo.List(status, deliveryUserID, page.Limit, page.Offset)
}
