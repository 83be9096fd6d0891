package repository

import "github.com/jhoicas/Distribuidora-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE): usarlo solo dentro de una
// transacción para serializar los cambios de stock por producto.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(search string, activeOnly bool, limit, offset int) ([]*entity.Product, error)
	ListBelowMinimum() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe el stock ya calculado. El caller es responsable de
	// haber bloqueado la fila y de registrar el StockMovement en la misma tx.
	UpdateStock(id string, newStock int) error
	Deactivate(id string) error
}
