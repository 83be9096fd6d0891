package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para reportes de ventas.
// Las cancelaciones cuentan pedidos pero no suman ingresos ni unidades.
type ReportRepo struct {
	q Querier
}

func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesSummary totales del período [from, to].
func (r *ReportRepo) SalesSummary(ctx context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE o.status = 'delivered'),
			count(*) FILTER (WHERE o.status = 'cancelled'),
			COALESCE(sum(o.total) FILTER (WHERE o.status <> 'cancelled'), 0),
			COALESCE((
				SELECT sum(oi.quantity)
				FROM order_items oi
				JOIN orders o2 ON o2.id = oi.order_id
				WHERE o2.created_at BETWEEN $1 AND $2 AND o2.status <> 'cancelled'
			), 0)
		FROM orders o
		WHERE o.created_at BETWEEN $1 AND $2`
	var s repository.SalesSummaryResult
	err := r.q.QueryRow(ctx, query, from, to).Scan(
		&s.OrderCount, &s.DeliveredCount, &s.CancelledCount, &s.GrossRevenue, &s.UnitsSold,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &s, nil
}

// TopProducts productos con más unidades vendidas en el período.
func (r *ReportRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT p.id, p.sku, p.name,
			sum(oi.quantity) AS units,
			sum(oi.unit_price * oi.quantity - oi.discount) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.created_at BETWEEN $1 AND $2 AND o.status <> 'cancelled'
		GROUP BY p.id, p.sku, p.name
		ORDER BY units DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.ProductName, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
