package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_id, COALESCE(user_id, ''), total, payment_method, status, notes,
		COALESCE(payment_id, ''), payment_status, payment_date, COALESCE(preference_id, ''),
		order_token, created_at`

// OrderRepo persistencia de pedidos y líneas sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.UserID, &o.Total, &o.PaymentMethod, &o.Status, &o.Notes,
		&o.PaymentID, &o.PaymentStatus, &o.PaymentDate, &o.PreferenceID,
		&o.OrderToken, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la cabecera del pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, user_id, total, payment_method, status, notes,
			payment_status, order_token, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, now())`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.UserID, order.Total, order.PaymentMethod,
		order.Status, order.Notes, order.PaymentStatus, order.OrderToken,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea del pedido.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, discount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Discount,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera del pedido.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene el pedido y bloquea la fila. Serializa webhooks
// concurrentes y cambios de estado sobre el mismo pedido.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// GetByToken obtiene el pedido por su token público de seguimiento.
func (r *OrderRepo) GetByToken(token string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_token = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by token: %w", err)
	}
	return o, nil
}

// GetItems obtiene las líneas del pedido.
func (r *OrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, discount
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Discount); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// List pedidos más recientes primero, opcionalmente filtrados por estado.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateStatus cambia el estado del pedido. La validación de transiciones
// vive en los casos de uso; aquí solo se persiste.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// UpdatePayment persiste status, payment_id, payment_status y payment_date.
func (r *OrderRepo) UpdatePayment(order *entity.Order) error {
	query := `
		UPDATE orders SET status = $2, payment_id = NULLIF($3, ''), payment_status = $4, payment_date = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.PaymentID, order.PaymentStatus, order.PaymentDate,
	)
	if err != nil {
		return fmt.Errorf("update order payment: %w", err)
	}
	return nil
}

// SetPreference guarda la preferencia creada en la pasarela.
func (r *OrderRepo) SetPreference(id, preferenceID, paymentMethod, paymentStatus string) error {
	query := `
		UPDATE orders SET preference_id = $2, payment_method = $3, payment_status = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, preferenceID, paymentMethod, paymentStatus)
	if err != nil {
		return fmt.Errorf("set order preference: %w", err)
	}
	return nil
}
