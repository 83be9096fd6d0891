package payments

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// Gateway puerto hacia la pasarela de pagos (Mercado Pago).
type Gateway interface {
	CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error)
	// GetPayment reconsulta un pago por ID. El webhook nunca se fía del
	// cuerpo recibido: el estado autoritativo sale de esta llamada.
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}

// PreferenceRequest datos para crear una preferencia de checkout.
type PreferenceRequest struct {
	OrderID         string
	Items           []PreferenceItem
	PayerName       string
	PayerEmail      string
	NotificationURL string
	BackURL         string
}

// PreferenceItem una línea del checkout.
type PreferenceItem struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Preference preferencia creada en la pasarela.
type Preference struct {
	ID               string
	InitPoint        string
	SandboxInitPoint string
}

// Payment estado de un pago según la pasarela.
type Payment struct {
	ID                string
	Status            string // approved, pending, in_process, rejected, cancelled, refunded
	StatusDetail      string
	ExternalReference string // ID del pedido
	PaymentMethodID   string
	TransactionAmount decimal.Decimal
	DateApproved      *time.Time
}

// TxRunner ejecuta la reconciliación de un webhook en una transacción:
// bloqueo del pedido, registro del evento y mutación atómica.
type TxRunner interface {
	RunPayment(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		eventRepo repository.PaymentEventRepository,
	) error) error
}

// Notifier notificaciones post-commit, best-effort.
type Notifier interface {
	PaymentApproved(ctx context.Context, order *entity.Order, customer *entity.Customer)
}
