package payments

import (
	"context"
	"fmt"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// CreatePreferenceUseCase crea la preferencia de checkout para un pedido y
// guarda su ID en la cabecera.
type CreatePreferenceUseCase struct {
	gateway      Gateway
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	sandbox      bool
}

func NewCreatePreferenceUseCase(
	gateway Gateway,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	sandbox bool,
) *CreatePreferenceUseCase {
	return &CreatePreferenceUseCase{
		gateway:      gateway,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		sandbox:      sandbox,
	}
}

func (uc *CreatePreferenceUseCase) Execute(ctx context.Context, orderID string) (*dto.CreatePreferenceResponse, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	if ord.Status == entity.OrderStatusCancelled || ord.Status == entity.OrderStatusDelivered {
		return nil, fmt.Errorf("el pedido %s ya está %s: %w", orderID, ord.Status, domain.ErrConflict)
	}
	if ord.PaymentStatus == entity.PaymentStatusPaid {
		return nil, fmt.Errorf("el pedido %s ya está pagado: %w", orderID, domain.ErrConflict)
	}

	items, err := uc.orderRepo.GetItems(ord.ID)
	if err != nil {
		return nil, err
	}
	req := &PreferenceRequest{OrderID: ord.ID}
	for _, item := range items {
		title := item.ProductID
		if p, perr := uc.productRepo.GetByID(item.ProductID); perr == nil && p != nil {
			title = p.Name
		}
		req.Items = append(req.Items, PreferenceItem{
			Title:     title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	if customer, cerr := uc.customerRepo.GetByID(ord.CustomerID); cerr == nil && customer != nil {
		req.PayerName = customer.Name
		req.PayerEmail = customer.Email
	}

	pref, err := uc.gateway.CreatePreference(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("crear preferencia: %w: %v", domain.ErrExternalService, err)
	}

	if err := uc.orderRepo.SetPreference(ord.ID, pref.ID, entity.PaymentMethodMercadoPago, entity.PaymentStatusPending); err != nil {
		return nil, err
	}

	url := pref.InitPoint
	if uc.sandbox && pref.SandboxInitPoint != "" {
		url = pref.SandboxInitPoint
	}
	return &dto.CreatePreferenceResponse{PreferenceID: pref.ID, PaymentURL: url}, nil
}

// Status reconsulta a la pasarela el estado del pago asociado al pedido.
func (uc *CreatePreferenceUseCase) Status(ctx context.Context, orderID string) (*dto.PaymentStatusResponse, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	if ord.PaymentID == "" {
		return &dto.PaymentStatusResponse{Status: ord.PaymentStatus}, nil
	}

	payment, err := uc.gateway.GetPayment(ctx, ord.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("consultar pago %s: %w: %v", ord.PaymentID, domain.ErrExternalService, err)
	}
	resp := &dto.PaymentStatusResponse{
		PaymentID:     payment.ID,
		Status:        payment.Status,
		StatusDetail:  payment.StatusDetail,
		PaymentMethod: payment.PaymentMethodID,
		Amount:        payment.TransactionAmount.StringFixed(2),
	}
	if payment.DateApproved != nil {
		resp.DateApproved = payment.DateApproved.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp, nil
}
