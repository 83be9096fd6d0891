package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo de productos. El stock nunca se edita por
// aquí: entra y sale solo por movimientos y pedidos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

func (uc *ProductUseCase) Create(req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(req.SKU)
	name := strings.TrimSpace(req.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("sku y nombre son obligatorios: %w", domain.ErrInvalidInput)
	}
	if req.SalePrice.IsNegative() || req.CostPrice.IsNegative() {
		return nil, fmt.Errorf("los precios no pueden ser negativos: %w", domain.ErrInvalidInput)
	}

	existing, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("sku %s: %w", sku, domain.ErrDuplicate)
	}

	product := &entity.Product{
		ID:           uuid.NewString(),
		SKU:          sku,
		Name:         name,
		Description:  req.Description,
		SalePrice:    req.SalePrice.Round(2),
		CostPrice:    req.CostPrice.Round(2),
		MinimumStock: req.MinimumStock,
		Unit:         req.Unit,
		CategoryID:   req.CategoryID,
		SupplierID:   req.SupplierID,
		Active:       true,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) Get(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) List(search string, activeOnly bool, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.List(search, activeOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// ListPublic catálogo visible en el menú público: solo activos con stock,
// sin precios de costo.
func (uc *ProductUseCase) ListPublic(search string, page dto.PageRequest) ([]*dto.PublicProductResponse, error) {
	products, err := uc.productRepo.List(search, true, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PublicProductResponse, 0, len(products))
	for _, p := range products {
		if p.CurrentStock <= 0 {
			continue
		}
		out = append(out, &dto.PublicProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.SalePrice,
			Stock:       p.CurrentStock,
		})
	}
	return out, nil
}

func (uc *ProductUseCase) Update(id string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("el nombre no puede quedar vacío: %w", domain.ErrInvalidInput)
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, fmt.Errorf("el precio no puede ser negativo: %w", domain.ErrInvalidInput)
		}
		product.SalePrice = req.SalePrice.Round(2)
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, fmt.Errorf("el costo no puede ser negativo: %w", domain.ErrInvalidInput)
		}
		product.CostPrice = req.CostPrice.Round(2)
	}
	if req.MinimumStock != nil {
		product.MinimumStock = *req.MinimumStock
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.SupplierID != nil {
		product.SupplierID = *req.SupplierID
	}

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate baja lógica: el producto deja de venderse pero conserva su
// historial de movimientos.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return uc.productRepo.Deactivate(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		SalePrice:    p.SalePrice,
		CostPrice:    p.CostPrice,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
		Unit:         p.Unit,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}
