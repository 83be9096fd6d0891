package inventory

import (
	"context"

	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta operaciones de stock dentro de una transacción.
// RunStock cubre el registro de un movimiento; RunImport añade los repos de
// catálogo que necesita la importación de planillas.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error

	RunImport(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		categoryRepo repository.CategoryRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
