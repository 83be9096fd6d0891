package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/application/orders"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
)

func seedProduct(store *fakeStore, id, name string, price float64, stock int) *entity.Product {
	p := &entity.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         name,
		SalePrice:    decimal.NewFromFloat(price),
		CurrentStock: stock,
		Active:       true,
	}
	store.products[id] = p
	return p
}

func seedCustomer(store *fakeStore, id, name, phone string) *entity.Customer {
	c := &entity.Customer{ID: id, Name: name, Phone: phone, Active: true}
	store.customers[id] = c
	return c
}

func newPlaceUseCase(store *fakeStore) *orders.PlaceOrderUseCase {
	return orders.NewPlaceOrderUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		&fakeCustomerRepo{store: store},
		nil,
	)
}

func TestPlace_DescuentaStockYRegistraMovimientos(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 25.50, 10)
	seedProduct(store, "p2", "Aceite 1L", 12.00, 4)
	seedCustomer(store, "c1", "María", "+5511999990000")

	uc := newPlaceUseCase(store)

	resp, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
		CustomerID:    "c1",
		PaymentMethod: entity.PaymentMethodCash,
		Items: []dto.OrderLineRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 2, Discount: decimal.NewFromFloat(1.50)},
		},
	}, "u1")

	require.NoError(t, err)
	require.NotNil(t, resp)

	// Pedidos de personal nacen confirmados.
	assert.Equal(t, entity.OrderStatusConfirmed, resp.Status)
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	assert.NotEmpty(t, resp.OrderToken)

	// Total = 3*25.50 + (2*12.00 - 1.50) = 76.50 + 22.50 = 99.00
	assert.True(t, decimal.NewFromFloat(99.00).Equal(resp.Total),
		"total esperado 99.00, obtenido %s", resp.Total)

	// Stock descontado.
	assert.Equal(t, 7, store.products["p1"].CurrentStock)
	assert.Equal(t, 2, store.products["p2"].CurrentStock)

	// Un movimiento de salida por línea, con referencia al pedido.
	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementTypeExit, m.MovementType)
		assert.Contains(t, m.Reason, resp.ID)
		assert.Equal(t, "u1", m.UserID)
	}
}

func TestPlace_TotalIgualASumaDeSubtotales(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Café 500g", 18.33, 100)
	seedProduct(store, "p2", "Azúcar 1kg", 7.77, 100)
	seedCustomer(store, "c1", "Juan", "+5511888880000")

	uc := newPlaceUseCase(store)

	resp, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
		CustomerID:    "c1",
		PaymentMethod: entity.PaymentMethodPix,
		Items: []dto.OrderLineRequest{
			{ProductID: "p1", Quantity: 7, Discount: decimal.NewFromFloat(2.10)},
			{ProductID: "p2", Quantity: 13},
		},
	}, "u1")
	require.NoError(t, err)

	sum := decimal.Zero
	for _, item := range resp.Items {
		sum = sum.Add(item.Subtotal)
	}
	assert.True(t, resp.Total.Equal(sum),
		"el total del pedido (%s) debe ser la suma de subtotales (%s)", resp.Total, sum)
}

func TestPlace_StockInsuficienteNoDebitaNada(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 25.50, 10)
	seedProduct(store, "p2", "Aceite 1L", 12.00, 1)
	seedCustomer(store, "c1", "María", "+5511999990000")

	uc := newPlaceUseCase(store)

	_, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
		CustomerID:    "c1",
		PaymentMethod: entity.PaymentMethodCash,
		Items: []dto.OrderLineRequest{
			{ProductID: "p1", Quantity: 3}, // esta línea sola alcanzaría
			{ProductID: "p2", Quantity: 5}, // esta no
		},
	}, "u1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p2", stockErr.ProductID)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	// Todo o nada: la primera línea tampoco debe haberse descontado.
	assert.Equal(t, 10, store.products["p1"].CurrentStock)
	assert.Equal(t, 1, store.products["p2"].CurrentStock)
	assert.Empty(t, store.movements)
	assert.Empty(t, store.orders)
}

func TestPlace_CarritoVacio(t *testing.T) {
	store := newFakeStore()
	seedCustomer(store, "c1", "María", "+5511999990000")
	uc := newPlaceUseCase(store)

	_, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
		CustomerID:    "c1",
		PaymentMethod: entity.PaymentMethodCash,
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestPlace_SinClienteEsRechazado(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 25.50, 10)
	uc := newPlaceUseCase(store)

	_, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, store.products["p1"].CurrentStock)
	assert.Empty(t, store.orders)
}

func TestPlace_SinMetodoDePago(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 25.50, 10)
	seedCustomer(store, "c1", "María", "+5511999990000")
	uc := newPlaceUseCase(store)

	_, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
		CustomerID: "c1",
		Items:      []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrMissingPaymentMethod)
}

func TestPlace_MetodoDePagoInvalido(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 25.50, 10)
	seedCustomer(store, "c1", "María", "+5511999990000")
	uc := newPlaceUseCase(store)

	_, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
		CustomerID:    "c1",
		PaymentMethod: "cheque",
		Items:         []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlace_CantidadInvalida(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 25.50, 10)
	seedCustomer(store, "c1", "María", "+5511999990000")
	uc := newPlaceUseCase(store)

	for _, qty := range []int{0, -2} {
		_, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
			CustomerID:    "c1",
			PaymentMethod: entity.PaymentMethodCash,
			Items:         []dto.OrderLineRequest{{ProductID: "p1", Quantity: qty}},
		}, "u1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
}

func TestPlace_ProductoInactivoNoVendible(t *testing.T) {
	store := newFakeStore()
	p := seedProduct(store, "p1", "Descontinuado", 9.99, 50)
	p.Active = false
	seedCustomer(store, "c1", "María", "+5511999990000")
	uc := newPlaceUseCase(store)

	_, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
		CustomerID:    "c1",
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	}, "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 50, store.products["p1"].CurrentStock)
}

func TestPlacePublic_CreaClientePorTelefono(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 25.50, 10)
	uc := newPlaceUseCase(store)

	resp, err := uc.PlacePublic(context.Background(), &dto.PublicOrderRequest{
		CustomerName:  "Pedro Silva",
		CustomerPhone: "+5511777770000",
		PaymentMethod: entity.PaymentMethodPix,
		Items:         []dto.OrderLineRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	// Pedidos públicos nacen pendientes, con token de seguimiento.
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.NotEmpty(t, resp.OrderToken)

	created, err := (&fakeCustomerRepo{store: store}).GetByPhone("+5511777770000")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Pedro Silva", created.Name)
	assert.Equal(t, created.ID, resp.CustomerID)

	// El stock se descuenta también para pedidos pendientes.
	assert.Equal(t, 8, store.products["p1"].CurrentStock)
}

func TestPlacePublic_ReutilizaClienteExistente(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 25.50, 10)
	existing := seedCustomer(store, "c9", "Pedro Silva", "+5511777770000")
	uc := newPlaceUseCase(store)

	resp, err := uc.PlacePublic(context.Background(), &dto.PublicOrderRequest{
		CustomerName:  "Pedro S.",
		CustomerPhone: "+5511777770000",
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.CustomerID)
	assert.Len(t, store.customers, 1, "no debe crearse un cliente duplicado")
}

func TestPlacePublic_SinDatosDeCliente(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 25.50, 10)
	uc := newPlaceUseCase(store)

	_, err := uc.PlacePublic(context.Background(), &dto.PublicOrderRequest{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestPlace_DescuentoMayorQueSubtotal(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Arroz 5kg", 10.00, 10)
	seedCustomer(store, "c1", "María", "+5511999990000")
	uc := newPlaceUseCase(store)

	_, err := uc.Place(context.Background(), &dto.PlaceOrderRequest{
		CustomerID:    "c1",
		PaymentMethod: entity.PaymentMethodCash,
		Items: []dto.OrderLineRequest{
			{ProductID: "p1", Quantity: 2, Discount: decimal.NewFromFloat(25.00)},
		},
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, store.products["p1"].CurrentStock)
}
