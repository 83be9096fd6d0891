package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// ImportProductsUseCase procesa una planilla de productos ya parseada.
// Cada fila se aplica en su propia transacción: una fila inválida se anota en
// el resumen y no tumba el resto de la importación.
//
// Reglas por fila:
//   - SKU existente: la cantidad se suma como movimiento de entrada.
//   - SKU nuevo: se crea el producto y la cantidad entra como stock inicial.
//   - Categoría/proveedor se resuelven por nombre y se crean si no existen.
type ImportProductsUseCase struct {
	txRunner TxRunner
}

func NewImportProductsUseCase(txRunner TxRunner) *ImportProductsUseCase {
	return &ImportProductsUseCase{txRunner: txRunner}
}

func (uc *ImportProductsUseCase) Execute(ctx context.Context, rows []dto.ImportRowRequest, filename, userID string) (*dto.ImportResultResponse, error) {
	result := &dto.ImportResultResponse{}

	for i, row := range rows {
		if err := uc.importRow(ctx, row, filename, userID, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d (%s): %v", i+1, row.SKU, err))
		}
	}
	return result, nil
}

func (uc *ImportProductsUseCase) importRow(ctx context.Context, row dto.ImportRowRequest, filename, userID string, result *dto.ImportResultResponse) error {
	sku := strings.TrimSpace(row.SKU)
	if sku == "" {
		return fmt.Errorf("sku vacío")
	}
	if row.Quantity < 0 {
		return fmt.Errorf("cantidad negativa")
	}

	// El nombre del archivo queda en el motivo como pista de auditoría.
	reason := "Importación de planilla"
	if strings.TrimSpace(filename) != "" {
		reason = "Importación de planilla: " + strings.TrimSpace(filename)
	}

	return uc.txRunner.RunImport(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		categoryRepo repository.CategoryRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		existing, err := productRepo.GetBySKU(sku)
		if err != nil {
			return err
		}

		if existing != nil {
			// SKU conocido: la planilla repone stock, no redefine el producto.
			if row.Quantity == 0 {
				result.Updated++
				return nil
			}
			locked, err := productRepo.GetForUpdate(existing.ID)
			if err != nil {
				return err
			}
			if err := productRepo.UpdateStock(locked.ID, locked.CurrentStock+row.Quantity); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ID:           uuid.NewString(),
				ProductID:    locked.ID,
				MovementType: entity.MovementTypeEntry,
				Quantity:     row.Quantity,
				Reason:       reason,
				UserID:       userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			result.Updated++
			return nil
		}

		if strings.TrimSpace(row.Name) == "" {
			return fmt.Errorf("producto nuevo sin nombre")
		}
		salePrice, err := decimal.NewFromString(strings.TrimSpace(row.SalePrice))
		if err != nil || salePrice.IsNegative() {
			return fmt.Errorf("precio de venta inválido %q", row.SalePrice)
		}
		costPrice := decimal.Zero
		if strings.TrimSpace(row.CostPrice) != "" {
			costPrice, err = decimal.NewFromString(strings.TrimSpace(row.CostPrice))
			if err != nil || costPrice.IsNegative() {
				return fmt.Errorf("precio de costo inválido %q", row.CostPrice)
			}
		}

		categoryID, err := resolveCategory(categoryRepo, row.Category)
		if err != nil {
			return err
		}
		supplierID, err := resolveSupplier(supplierRepo, row.Supplier)
		if err != nil {
			return err
		}

		unit := strings.TrimSpace(row.Unit)
		if unit == "" {
			unit = "UN"
		}

		product := &entity.Product{
			ID:           uuid.NewString(),
			SKU:          sku,
			Name:         strings.TrimSpace(row.Name),
			Description:  row.Description,
			SalePrice:    salePrice.Round(2),
			CostPrice:    costPrice.Round(2),
			CurrentStock: row.Quantity,
			MinimumStock: row.MinimumStock,
			Unit:         unit,
			CategoryID:   categoryID,
			SupplierID:   supplierID,
			Active:       true,
		}
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if row.Quantity > 0 {
			mov := &entity.StockMovement{
				ID:           uuid.NewString(),
				ProductID:    product.ID,
				MovementType: entity.MovementTypeEntry,
				Quantity:     row.Quantity,
				Reason:       "Stock inicial - " + reason,
				UserID:       userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		result.Created++
		return nil
	})
}

func resolveCategory(repo repository.CategoryRepository, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	existing, err := repo.GetByName(name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	category := &entity.Category{ID: uuid.NewString(), Name: name, Active: true}
	if err := repo.Create(category); err != nil {
		return "", err
	}
	return category.ID, nil
}

func resolveSupplier(repo repository.SupplierRepository, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	existing, err := repo.GetByName(name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	supplier := &entity.Supplier{ID: uuid.NewString(), Name: name, Active: true}
	if err := repo.Create(supplier); err != nil {
		return "", err
	}
	return supplier.ID, nil
}
