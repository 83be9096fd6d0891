package repository

import (
	"time"

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos (append-only).
// No existe Update ni Delete: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	List(limit, offset int) ([]*entity.StockMovement, error)
}
