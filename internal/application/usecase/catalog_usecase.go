package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// CatalogUseCase gestión de categorías y proveedores.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewCatalogUseCase(categoryRepo repository.CategoryRepository, supplierRepo repository.SupplierRepository) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

func (uc *CatalogUseCase) CreateCategory(name, description string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("el nombre es obligatorio: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.categoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("categoría %s: %w", name, domain.ErrDuplicate)
	}
	category := &entity.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Active:      true,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *CatalogUseCase) ListCategories() ([]*entity.Category, error) {
	return uc.categoryRepo.List(true)
}

func (uc *CatalogUseCase) CreateSupplier(s *entity.Supplier) (*entity.Supplier, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return nil, fmt.Errorf("el nombre es obligatorio: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.supplierRepo.GetByName(s.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("proveedor %s: %w", s.Name, domain.ErrDuplicate)
	}
	s.ID = uuid.NewString()
	s.Active = true
	if err := uc.supplierRepo.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *CatalogUseCase) ListSuppliers() ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(true)
}
