package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest una línea del carrito.
type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// PlaceOrderRequest body para POST /api/orders (flujo de personal).
type PlaceOrderRequest struct {
	CustomerID    string             `json:"customer_id"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
	Items         []OrderLineRequest `json:"items"`
}

// PublicOrderRequest body para POST /order (flujo público, sin autenticación).
// El cliente se busca por teléfono y se crea si no existe.
type PublicOrderRequest struct {
	CustomerName         string             `json:"customer_name"`
	CustomerPhone        string             `json:"customer_phone"`
	CustomerEmail        string             `json:"customer_email"`
	CustomerCEP          string             `json:"customer_cep"`
	CustomerAddress      string             `json:"customer_address"`
	CustomerNeighborhood string             `json:"customer_neighborhood"`
	CustomerCity         string             `json:"customer_city"`
	CustomerState        string             `json:"customer_state"`
	PaymentMethod        string             `json:"payment_method"`
	Notes                string             `json:"notes"`
	Items                []OrderLineRequest `json:"items"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse una línea del pedido con su subtotal calculado.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse cabecera + líneas del pedido.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	CustomerName  string              `json:"customer_name,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentID     string              `json:"payment_id,omitempty"`
	PaymentDate   *time.Time          `json:"payment_date,omitempty"`
	OrderToken    string              `json:"order_token,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}

// PublicOrderStatusResponse respuesta de GET /order/:token (sin autenticación).
// El token es la capacidad: no expone IDs internos de cliente ni usuario.
type PublicOrderStatusResponse struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	CustomerName  string              `json:"customer_name"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemResponse `json:"items"`
}
