package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// RegisterMovementUseCase registra un movimiento manual de stock.
// El invariante central: el stock del producto y la fila del movimiento se
// escriben en la misma transacción, con la fila del producto bloqueada.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
}

func NewRegisterMovementUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// Execute aplica el movimiento y devuelve la fila registrada.
// Para adjustment, req.Quantity es el stock objetivo; el movimiento almacena
// el delta con signo realmente aplicado (objetivo − stock previo).
func (uc *RegisterMovementUseCase) Execute(ctx context.Context, req *dto.RegisterMovementRequest, userID string) (*entity.StockMovement, error) {
	switch req.MovementType {
	case entity.MovementTypeEntry, entity.MovementTypeExit:
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("la cantidad debe ser mayor que cero: %w", domain.ErrInvalidInput)
		}
	case entity.MovementTypeAdjustment:
		if req.Quantity < 0 {
			return nil, fmt.Errorf("el stock objetivo no puede ser negativo: %w", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("tipo de movimiento %q desconocido: %w", req.MovementType, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("el motivo es obligatorio: %w", domain.ErrInvalidInput)
	}

	var mov *entity.StockMovement
	err := uc.txRunner.RunStock(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(req.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", req.ProductID, domain.ErrNotFound)
		}

		var newStock, recorded int
		switch req.MovementType {
		case entity.MovementTypeEntry:
			newStock = product.CurrentStock + req.Quantity
			recorded = req.Quantity
		case entity.MovementTypeExit:
			if product.CurrentStock < req.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.CurrentStock,
					Requested:   req.Quantity,
				}
			}
			newStock = product.CurrentStock - req.Quantity
			recorded = req.Quantity
		case entity.MovementTypeAdjustment:
			// El delta se calcula ANTES de mutar el stock.
			recorded = req.Quantity - product.CurrentStock
			newStock = req.Quantity
		}

		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		mov = &entity.StockMovement{
			ID:           uuid.NewString(),
			ProductID:    product.ID,
			MovementType: req.MovementType,
			Quantity:     recorded,
			Reason:       strings.TrimSpace(req.Reason),
			UserID:       userID,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// History devuelve los movimientos de un producto, más recientes primero.
func (uc *RegisterMovementUseCase) History(productID string, page dto.PageRequest) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByProduct(productID, nil, nil, page.Limit, page.Offset)
}
