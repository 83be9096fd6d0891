package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// PlaceOrderUseCase crea pedidos (flujo staff y flujo público) con débito de
// stock atómico: o todas las líneas se descuentan, o ninguna.
type PlaceOrderUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	notifier     Notifier
}

func NewPlaceOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	notifier Notifier,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
	}
}

// Place crea un pedido interno (staff). Nace en estado confirmed.
// Todo pedido interno exige un cliente registrado.
func (uc *PlaceOrderUseCase) Place(ctx context.Context, req *dto.PlaceOrderRequest, userID string) (*dto.OrderResponse, error) {
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, fmt.Errorf("el cliente es obligatorio: %w", domain.ErrInvalidInput)
	}
	customer, err := uc.customerRepo.GetByID(req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", req.CustomerID, domain.ErrNotFound)
	}
	return uc.place(ctx, req.CustomerID, userID, req.Items, req.PaymentMethod, req.Notes, entity.OrderStatusConfirmed)
}

// PlacePublic crea un pedido del carrito público. Nace en estado pending y
// el cliente se resuelve por teléfono (se crea si no existe).
func (uc *PlaceOrderUseCase) PlacePublic(ctx context.Context, req *dto.PublicOrderRequest) (*dto.OrderResponse, error) {
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, fmt.Errorf("nombre y teléfono del cliente son obligatorios: %w", domain.ErrInvalidInput)
	}

	customer, err := uc.customerRepo.GetByPhone(req.CustomerPhone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &entity.Customer{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(req.CustomerName),
			Phone:        strings.TrimSpace(req.CustomerPhone),
			Email:        strings.TrimSpace(req.CustomerEmail),
			CEP:          req.CustomerCEP,
			Address:      req.CustomerAddress,
			Neighborhood: req.CustomerNeighborhood,
			City:         req.CustomerCity,
			State:        req.CustomerState,
			Active:       true,
		}
		if err := uc.customerRepo.Create(customer); err != nil {
			return nil, err
		}
	}

	return uc.place(ctx, customer.ID, "", req.Items, req.PaymentMethod, req.Notes, entity.OrderStatusPending)
}

// place valida el carrito, y dentro de una sola transacción bloquea cada
// producto, verifica stock, descuenta y registra los movimientos de salida.
func (uc *PlaceOrderUseCase) place(
	ctx context.Context,
	customerID, userID string,
	lines []dto.OrderLineRequest,
	paymentMethod, notes string,
	initialStatus string,
) (*dto.OrderResponse, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if paymentMethod == "" {
		return nil, domain.ErrMissingPaymentMethod
	}
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("método de pago %q no soportado: %w", paymentMethod, domain.ErrInvalidInput)
	}
	for i, line := range lines {
		if line.ProductID == "" {
			return nil, fmt.Errorf("línea %d sin producto: %w", i+1, domain.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("línea %d: la cantidad debe ser mayor que cero: %w", i+1, domain.ErrInvalidInput)
		}
		if line.Discount.IsNegative() {
			return nil, fmt.Errorf("línea %d: el descuento no puede ser negativo: %w", i+1, domain.ErrInvalidInput)
		}
	}

	order := &entity.Order{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		UserID:        userID,
		PaymentMethod: paymentMethod,
		Status:        initialStatus,
		PaymentStatus: entity.PaymentStatusPending,
		Notes:         notes,
		OrderToken:    uuid.NewString(),
	}

	var (
		items        []*entity.OrderItem
		productNames = make(map[string]string)
	)

	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		_ repository.CustomerRepository,
	) error {
		total := decimal.Zero
		items = items[:0]

		for _, line := range lines {
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.Active {
				return fmt.Errorf("producto %s no disponible: %w", line.ProductID, domain.ErrNotFound)
			}
			if product.CurrentStock < line.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.CurrentStock,
					Requested:   line.Quantity,
				}
			}

			unitPrice := line.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.SalePrice
			}
			maxDiscount := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			if line.Discount.GreaterThan(maxDiscount) {
				return fmt.Errorf("línea de %s: el descuento supera el subtotal: %w", product.Name, domain.ErrInvalidInput)
			}

			item := &entity.OrderItem{
				ID:        uuid.NewString(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
				Discount:  line.Discount,
			}
			items = append(items, item)
			productNames[product.ID] = product.Name
			total = total.Add(item.Subtotal().Round(2))

			newStock := product.CurrentStock - line.Quantity
			if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ID:           uuid.NewString(),
				ProductID:    product.ID,
				MovementType: entity.MovementTypeExit,
				Quantity:     line.Quantity,
				Reason:       fmt.Sprintf("Venta - Pedido #%s", order.ID),
				UserID:       userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		order.Total = total.Round(2)
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range items {
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		customer, cerr := uc.customerRepo.GetByID(order.CustomerID)
		if cerr == nil && customer != nil {
			uc.notifier.OrderConfirmation(ctx, order, items, customer)
		}
	}

	return buildOrderResponse(order, items, productNames), nil
}

func buildOrderResponse(order *entity.Order, items []*entity.OrderItem, productNames map[string]string) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		PaymentID:     order.PaymentID,
		PaymentDate:   order.PaymentDate,
		Notes:         order.Notes,
		OrderToken:    order.OrderToken,
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: productNames[item.ProductID],
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Subtotal:    item.Subtotal().Round(2),
		})
	}
	return resp
}
