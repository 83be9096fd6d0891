package repository

import "github.com/jhoicas/Distribuidora-api/internal/domain/entity"

// CustomerRepository puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetByPhone devuelve el cliente con ese teléfono o nil (flujo público).
	GetByPhone(phone string) (*entity.Customer, error)
	List(search string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Deactivate(id string) error
}
