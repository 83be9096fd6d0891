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

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryColumns = `id, order_id, COALESCE(delivery_user_id, ''), status,
		COALESCE(delivery_proof, ''), COALESCE(notes, ''), delivered_at, created_at`

// DeliveryRepo persistencia de entregas sobre PostgreSQL. La columna order_id
// tiene constraint UNIQUE: a lo sumo una entrega por pedido.
type DeliveryRepo struct {
	q Querier
}

func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(
		&d.ID, &d.OrderID, &d.DeliveryUserID, &d.Status,
		&d.DeliveryProof, &d.Notes, &d.DeliveredAt, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserta una entrega.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, order_id, delivery_user_id, status, delivery_proof, notes, delivered_at, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), $7, now())`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.OrderID, delivery.DeliveryUserID, delivery.Status,
		delivery.DeliveryProof, delivery.Notes, delivery.DeliveredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyAssigned
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByID obtiene una entrega por ID.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	d, err := scanDelivery(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

// GetByOrderID obtiene la entrega del pedido, si existe.
func (r *DeliveryRepo) GetByOrderID(orderID string) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE order_id = $1`
	d, err := scanDelivery(r.q.QueryRow(context.Background(), query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery by order: %w", err)
	}
	return d, nil
}

// List entregas filtradas por estado y/o repartidor.
func (r *DeliveryRepo) List(status, deliveryUserID string, limit, offset int) ([]*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR delivery_user_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, status, deliveryUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// Update persiste el estado completo de la entrega (reasignación incluida).
func (r *DeliveryRepo) Update(delivery *entity.Delivery) error {
	query := `
		UPDATE deliveries SET delivery_user_id = NULLIF($2, ''), status = $3,
			delivery_proof = NULLIF($4, ''), notes = NULLIF($5, ''), delivered_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.DeliveryUserID, delivery.Status,
		delivery.DeliveryProof, delivery.Notes, delivery.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	return nil
}
