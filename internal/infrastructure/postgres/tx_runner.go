package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	deliveryapp "github.com/jhoicas/Distribuidora-api/internal/application/delivery"
	"github.com/jhoicas/Distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/Distribuidora-api/internal/application/orders"
	"github.com/jhoicas/Distribuidora-api/internal/application/payments"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

var (
	_ orders.TxRunner      = (*TxRunner)(nil)
	_ inventory.TxRunner   = (*TxRunner)(nil)
	_ payments.TxRunner    = (*TxRunner)(nil)
	_ deliveryapp.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// repositorios atados a la tx. Commit solo si el callback no falla.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder transacción del motor de pedidos: cabecera, líneas, stock y movimientos.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewOrderRepository(q), NewProductRepository(q), NewStockMovementRepository(q), NewCustomerRepository(q))
	})
}

// RunStock transacción de un movimiento manual de stock.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewStockMovementRepository(q))
	})
}

// RunImport transacción de una fila de importación (incluye catálogo).
func (r *TxRunner) RunImport(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewStockMovementRepository(q), NewCategoryRepository(q), NewSupplierRepository(q))
	})
}

// RunPayment transacción de reconciliación de un webhook de pago.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	eventRepo repository.PaymentEventRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewOrderRepository(q), NewProductRepository(q), NewStockMovementRepository(q), NewPaymentEventRepository(q))
	})
}

// RunDelivery transacción de asignación/cierre de entrega con cascada al pedido.
func (r *TxRunner) RunDelivery(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewOrderRepository(q), NewDeliveryRepository(q))
	})
}
