package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

var _ repository.PaymentEventRepository = (*PaymentEventRepo)(nil)

// PaymentEventRepo registro de notificaciones de pago aplicadas. El constraint
// UNIQUE (order_id, payment_id, mapped_status) es la llave de idempotencia del
// webhook: aplicar dos veces la misma notificación inserta cero filas.
type PaymentEventRepo struct {
	q Querier
}

func NewPaymentEventRepository(q Querier) *PaymentEventRepo {
	return &PaymentEventRepo{q: q}
}

// Insert registra el evento. Devuelve false si ya existía (duplicado).
func (r *PaymentEventRepo) Insert(event *entity.PaymentEvent) (bool, error) {
	query := `
		INSERT INTO payment_events (id, order_id, payment_id, gateway_status, mapped_status, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (order_id, payment_id, mapped_status) DO NOTHING`
	cmd, err := r.q.Exec(context.Background(), query,
		event.ID, event.OrderID, event.PaymentID, event.GatewayStatus, event.MappedStatus,
	)
	if err != nil {
		return false, fmt.Errorf("insert payment event: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListByOrder eventos aplicados a un pedido, en orden de llegada.
func (r *PaymentEventRepo) ListByOrder(orderID string) ([]*entity.PaymentEvent, error) {
	query := `
		SELECT id, order_id, payment_id, gateway_status, mapped_status, created_at
		FROM payment_events WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payment events: %w", err)
	}
	defer rows.Close()

	var events []*entity.PaymentEvent
	for rows.Next() {
		var e entity.PaymentEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.PaymentID, &e.GatewayStatus, &e.MappedStatus, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
