package repository

import "github.com/jhoicas/Distribuidora-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios del sistema.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListByRole(role string, activeOnly bool) ([]*entity.User, error)
}
