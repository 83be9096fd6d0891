package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/application/orders"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/order"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// ReconcileResult resume qué hizo la reconciliación con una notificación.
// Applied=false con Note explica por qué no hubo mutación (duplicado,
// pedido terminal, tipo ignorado): el webhook igual se responde con 200.
type ReconcileResult struct {
	OrderID             string
	PaymentID           string
	GatewayStatus       string
	MappedPaymentStatus string
	Applied             bool
	Note                string
}

// ReconcileUseCase aplica notificaciones de pago de la pasarela al pedido.
// El estado nunca sale del cuerpo del webhook: el pago se reconsulta a la
// pasarela y el resultado se aplica de forma atómica e idempotente.
type ReconcileUseCase struct {
	gateway      Gateway
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	notifier     Notifier
}

func NewReconcileUseCase(
	gateway Gateway,
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	notifier Notifier,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		gateway:      gateway,
		txRunner:     txRunner,
		customerRepo: customerRepo,
		notifier:     notifier,
	}
}

// mapGatewayStatus traduce el estado de la pasarela a (payment_status,
// estado objetivo del pedido). Un objetivo vacío significa "no tocar el estado".
func mapGatewayStatus(status string) (paymentStatus, targetOrderStatus string, known bool) {
	switch status {
	case "approved":
		return entity.PaymentStatusPaid, entity.OrderStatusConfirmed, true
	case "pending", "in_process":
		return entity.PaymentStatusPending, "", true
	case "rejected", "cancelled":
		return entity.PaymentStatusFailed, entity.OrderStatusCancelled, true
	case "refunded", "charged_back":
		return entity.PaymentStatusRefunded, entity.OrderStatusCancelled, true
	}
	return "", "", false
}

// HandleWebhook procesa una notificación ya verificada (firma válida).
// Devuelve error solo cuando la notificación es malformada o la pasarela no
// responde; los casos "nada que hacer" se devuelven como resultado con Note.
func (uc *ReconcileUseCase) HandleWebhook(ctx context.Context, n *dto.WebhookNotification) (*ReconcileResult, error) {
	if n.Type != "payment" {
		return &ReconcileResult{Note: fmt.Sprintf("tipo %q ignorado", n.Type)}, nil
	}
	if n.Data.ID == "" {
		return nil, fmt.Errorf("notificación sin data.id: %w", domain.ErrInvalidInput)
	}

	payment, err := uc.gateway.GetPayment(ctx, n.Data.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar pago %s: %w: %v", n.Data.ID, domain.ErrExternalService, err)
	}

	result := &ReconcileResult{
		PaymentID:     payment.ID,
		GatewayStatus: payment.Status,
		OrderID:       payment.ExternalReference,
	}
	if payment.ExternalReference == "" {
		result.Note = "pago sin external_reference"
		return result, nil
	}

	mappedStatus, targetStatus, known := mapGatewayStatus(payment.Status)
	if !known {
		result.Note = fmt.Sprintf("estado %q no mapeado", payment.Status)
		return result, nil
	}
	result.MappedPaymentStatus = mappedStatus

	var (
		paidOrder *entity.Order
		newlyPaid bool
	)
	err = uc.txRunner.RunPayment(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		eventRepo repository.PaymentEventRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(payment.ExternalReference)
		if err != nil {
			return err
		}
		if ord == nil {
			result.Note = "pedido no encontrado"
			return nil
		}

		applied, err := eventRepo.Insert(&entity.PaymentEvent{
			ID:            uuid.NewString(),
			OrderID:       ord.ID,
			PaymentID:     payment.ID,
			GatewayStatus: payment.Status,
			MappedStatus:  mappedStatus,
		})
		if err != nil {
			return err
		}
		if !applied {
			result.Note = "notificación duplicada"
			return nil
		}

		wasPaid := ord.PaymentStatus == entity.PaymentStatusPaid

		ord.PaymentID = payment.ID
		ord.PaymentStatus = mappedStatus
		ord.PaymentDate = payment.DateApproved

		if targetStatus != "" && targetStatus != ord.Status {
			switch {
			case order.IsTerminal(ord.Status):
				// Pedido ya cerrado: se registra el pago pero no se reabre.
				result.Note = fmt.Sprintf("pedido ya %s, estado no modificado", ord.Status)
			case !order.CanTransition(ord.Status, targetStatus):
				result.Note = fmt.Sprintf("transición %s -> %s no permitida, estado no modificado", ord.Status, targetStatus)
			default:
				if targetStatus == entity.OrderStatusCancelled {
					if err := orders.RestoreStock(orderRepo, productRepo, movRepo, ord, ""); err != nil {
						return err
					}
				}
				ord.Status = targetStatus
			}
		}

		if err := orderRepo.UpdatePayment(ord); err != nil {
			return err
		}
		result.Applied = true
		if mappedStatus == entity.PaymentStatusPaid && !wasPaid {
			newlyPaid = true
			paidOrder = ord
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newlyPaid && uc.notifier != nil {
		if customer, cerr := uc.customerRepo.GetByID(paidOrder.CustomerID); cerr == nil && customer != nil {
			uc.notifier.PaymentApproved(ctx, paidOrder, customer)
		}
	}
	return result, nil
}
