package orders

import (
	"fmt"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// QueryUseCase lecturas de pedidos para staff y para el seguimiento público.
type QueryUseCase struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

func NewQueryUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo, productRepo: productRepo, customerRepo: customerRepo}
}

// Get devuelve el pedido con sus líneas.
func (uc *QueryUseCase) Get(id string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
	}
	items, err := uc.orderRepo.GetItems(ord.ID)
	if err != nil {
		return nil, err
	}
	resp := buildOrderResponse(ord, items, uc.productNames(items))
	if customer, err := uc.customerRepo.GetByID(ord.CustomerID); err == nil && customer != nil {
		resp.CustomerName = customer.Name
	}
	return resp, nil
}

// List devuelve pedidos paginados, opcionalmente filtrados por estado.
func (uc *QueryUseCase) List(status string, limit, offset int) ([]*dto.OrderResponse, error) {
	ords, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := make([]*dto.OrderResponse, 0, len(ords))
	for _, ord := range ords {
		resp = append(resp, buildOrderResponse(ord, nil, nil))
	}
	return resp, nil
}

// GetByToken devuelve la vista pública del pedido. El token es la única
// credencial: no exige sesión y no expone IDs internos.
func (uc *QueryUseCase) GetByToken(token string) (*dto.PublicOrderStatusResponse, error) {
	ord, err := uc.orderRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.GetItems(ord.ID)
	if err != nil {
		return nil, err
	}
	names := uc.productNames(items)

	resp := &dto.PublicOrderStatusResponse{
		ID:            ord.ID,
		Status:        ord.Status,
		Total:         ord.Total,
		PaymentMethod: ord.PaymentMethod,
		CreatedAt:     ord.CreatedAt,
	}
	if customer, err := uc.customerRepo.GetByID(ord.CustomerID); err == nil && customer != nil {
		resp.CustomerName = customer.Name
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: names[item.ProductID],
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Subtotal:    item.Subtotal().Round(2),
		})
	}
	return resp, nil
}

// Receipt devuelve las entidades crudas del pedido para generar el
// comprobante (PDF, enlace de WhatsApp). El mapa trae el nombre de cada
// producto por ID.
func (uc *QueryUseCase) Receipt(id string) (*entity.Order, *entity.Customer, []*entity.OrderItem, map[string]string, error) {
	ord, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if ord == nil {
		return nil, nil, nil, nil, fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
	}
	items, err := uc.orderRepo.GetItems(ord.ID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	customer, err := uc.customerRepo.GetByID(ord.CustomerID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if customer == nil {
		return nil, nil, nil, nil, fmt.Errorf("cliente %s: %w", ord.CustomerID, domain.ErrNotFound)
	}
	return ord, customer, items, uc.productNames(items), nil
}

func (uc *QueryUseCase) productNames(items []*entity.OrderItem) map[string]string {
	names := make(map[string]string, len(items))
	for _, item := range items {
		if _, ok := names[item.ProductID]; ok {
			continue
		}
		if p, err := uc.productRepo.GetByID(item.ProductID); err == nil && p != nil {
			names[item.ProductID] = p.Name
		}
	}
	return names
}
