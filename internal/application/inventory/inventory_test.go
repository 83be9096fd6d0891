package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica de rollback por snapshot.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products   map[string]*entity.Product
	movements  []*entity.StockMovement
	categories map[string]*entity.Category
	suppliers  map[string]*entity.Supplier
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
		suppliers:  make(map[string]*entity.Supplier),
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, cat := range s.categories {
		cc := *cat
		c.categories[id] = &cc
	}
	for id, sup := range s.suppliers {
		cs := *sup
		c.suppliers[id] = &cs
	}
	c.movements = append([]*entity.StockMovement(nil), s.movements...)
	return c
}

type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) RunStock(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	snapshot := r.store.clone()
	err := fn(&fakeProductRepo{store: r.store}, &fakeMovementRepo{store: r.store})
	if err != nil {
		*r.store = *snapshot
	}
	return err
}

func (r *fakeTxRunner) RunImport(_ context.Context, fn func(
	repository.ProductRepository,
	repository.StockMovementRepository,
	repository.CategoryRepository,
	repository.SupplierRepository,
) error) error {
	snapshot := r.store.clone()
	err := fn(
		&fakeProductRepo{store: r.store},
		&fakeMovementRepo{store: r.store},
		&fakeCategoryRepo{store: r.store},
		&fakeSupplierRepo{store: r.store},
	)
	if err != nil {
		*r.store = *snapshot
	}
	return err
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.store.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.store.products[id], nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.store.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) List(string, bool, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListBelowMinimum() ([]*entity.Product, error)           { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}
func (r *fakeProductRepo) UpdateStock(id string, newStock int) error {
	r.store.products[id].CurrentStock = newStock
	return nil
}
func (r *fakeProductRepo) Deactivate(id string) error {
	r.store.products[id].Active = false
	return nil
}

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	m.CreatedAt = time.Now()
	r.store.movements = append(r.store.movements, m)
	return nil
}
func (r *fakeMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }
func (r *fakeMovementRepo) ListByProduct(productID string, _, _ *time.Time, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMovementRepo) List(int, int) ([]*entity.StockMovement, error) {
	return r.store.movements, nil
}

type fakeCategoryRepo struct{ store *fakeStore }

func (r *fakeCategoryRepo) Create(c *entity.Category) error { r.store.categories[c.ID] = c; return nil }
func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.store.categories[id], nil
}
func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.store.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCategoryRepo) List(bool) ([]*entity.Category, error) { return nil, nil }

type fakeSupplierRepo struct{ store *fakeStore }

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.store.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.store.suppliers[id], nil
}
func (r *fakeSupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	for _, s := range r.store.suppliers {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeSupplierRepo) List(bool) ([]*entity.Supplier, error) { return nil, nil }

func seedProduct(store *fakeStore, id, sku string, stock int) *entity.Product {
	p := &entity.Product{
		ID:           id,
		SKU:          sku,
		Name:         "Producto " + id,
		SalePrice:    decimal.NewFromFloat(10.00),
		CurrentStock: stock,
		Active:       true,
	}
	store.products[id] = p
	return p
}

func newRegisterUseCase(store *fakeStore) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(&fakeTxRunner{store: store}, &fakeMovementRepo{store: store})
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_Entrada(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "SKU-1", 5)
	uc := newRegisterUseCase(store)

	mov, err := uc.Execute(context.Background(), &dto.RegisterMovementRequest{
		ProductID:    "p1",
		MovementType: entity.MovementTypeEntry,
		Quantity:     10,
		Reason:       "Compra a proveedor",
	}, "u1")

	require.NoError(t, err)
	assert.Equal(t, 15, store.products["p1"].CurrentStock)
	assert.Equal(t, 10, mov.Quantity)
	assert.Equal(t, 10, mov.SignedDelta())
}

func TestRegisterMovement_Salida(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "SKU-1", 5)
	uc := newRegisterUseCase(store)

	mov, err := uc.Execute(context.Background(), &dto.RegisterMovementRequest{
		ProductID:    "p1",
		MovementType: entity.MovementTypeExit,
		Quantity:     3,
		Reason:       "Merma",
	}, "u1")

	require.NoError(t, err)
	assert.Equal(t, 2, store.products["p1"].CurrentStock)
	assert.Equal(t, -3, mov.SignedDelta())
}

func TestRegisterMovement_SalidaSinStock(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "SKU-1", 2)
	uc := newRegisterUseCase(store)

	_, err := uc.Execute(context.Background(), &dto.RegisterMovementRequest{
		ProductID:    "p1",
		MovementType: entity.MovementTypeExit,
		Quantity:     5,
		Reason:       "Merma",
	}, "u1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, store.products["p1"].CurrentStock, "el stock no debe cambiar")
	assert.Empty(t, store.movements)
}

func TestRegisterMovement_AjusteGuardaDelta(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "SKU-1", 10)
	uc := newRegisterUseCase(store)

	// Objetivo 4: el movimiento debe registrar el delta (4 - 10 = -6),
	// no el objetivo ni cero.
	mov, err := uc.Execute(context.Background(), &dto.RegisterMovementRequest{
		ProductID:    "p1",
		MovementType: entity.MovementTypeAdjustment,
		Quantity:     4,
		Reason:       "Conteo físico",
	}, "u1")

	require.NoError(t, err)
	assert.Equal(t, 4, store.products["p1"].CurrentStock)
	assert.Equal(t, -6, mov.Quantity)
	assert.Equal(t, -6, mov.SignedDelta())
}

func TestRegisterMovement_AjusteHaciaArriba(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "SKU-1", 3)
	uc := newRegisterUseCase(store)

	mov, err := uc.Execute(context.Background(), &dto.RegisterMovementRequest{
		ProductID:    "p1",
		MovementType: entity.MovementTypeAdjustment,
		Quantity:     9,
		Reason:       "Conteo físico",
	}, "u1")

	require.NoError(t, err)
	assert.Equal(t, 9, store.products["p1"].CurrentStock)
	assert.Equal(t, 6, mov.Quantity)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "SKU-1", 5)
	uc := newRegisterUseCase(store)

	cases := []struct {
		name string
		req  dto.RegisterMovementRequest
	}{
		{"tipo desconocido", dto.RegisterMovementRequest{ProductID: "p1", MovementType: "transfer", Quantity: 1, Reason: "x"}},
		{"cantidad cero en entrada", dto.RegisterMovementRequest{ProductID: "p1", MovementType: entity.MovementTypeEntry, Quantity: 0, Reason: "x"}},
		{"cantidad negativa en salida", dto.RegisterMovementRequest{ProductID: "p1", MovementType: entity.MovementTypeExit, Quantity: -1, Reason: "x"}},
		{"objetivo negativo en ajuste", dto.RegisterMovementRequest{ProductID: "p1", MovementType: entity.MovementTypeAdjustment, Quantity: -1, Reason: "x"}},
		{"sin motivo", dto.RegisterMovementRequest{ProductID: "p1", MovementType: entity.MovementTypeEntry, Quantity: 1, Reason: "  "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tc.req, "u1")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	store := newFakeStore()
	uc := newRegisterUseCase(store)

	_, err := uc.Execute(context.Background(), &dto.RegisterMovementRequest{
		ProductID:    "nope",
		MovementType: entity.MovementTypeEntry,
		Quantity:     1,
		Reason:       "x",
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ImportProducts
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_SKUNuevoCreaProductoConStockInicial(t *testing.T) {
	store := newFakeStore()
	uc := inventory.NewImportProductsUseCase(&fakeTxRunner{store: store})

	result, err := uc.Execute(context.Background(), []dto.ImportRowRequest{
		{SKU: "SKU-NEW", Name: "Harina 1kg", SalePrice: "8.50", Quantity: 20, Category: "Alimentos", Supplier: "Molinos SA"},
	}, "catalogo.csv", "u1")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Empty(t, result.Errors)

	p, _ := (&fakeProductRepo{store: store}).GetBySKU("SKU-NEW")
	require.NotNil(t, p)
	assert.Equal(t, 20, p.CurrentStock)
	assert.True(t, decimal.NewFromFloat(8.50).Equal(p.SalePrice))

	// Categoría y proveedor creados por nombre.
	cat, _ := (&fakeCategoryRepo{store: store}).GetByName("Alimentos")
	require.NotNil(t, cat)
	assert.Equal(t, cat.ID, p.CategoryID)

	// Stock inicial registrado como entrada.
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeEntry, store.movements[0].MovementType)
	assert.Equal(t, 20, store.movements[0].Quantity)
	assert.Equal(t, "Stock inicial - Importación de planilla: catalogo.csv", store.movements[0].Reason)
}

func TestImport_SKUExistenteSumaStock(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "SKU-1", 5)
	uc := inventory.NewImportProductsUseCase(&fakeTxRunner{store: store})

	result, err := uc.Execute(context.Background(), []dto.ImportRowRequest{
		{SKU: "SKU-1", Name: "Otro nombre", SalePrice: "99.99", Quantity: 7},
	}, "reposicion.csv", "u1")

	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)

	p := store.products["p1"]
	assert.Equal(t, 12, p.CurrentStock)
	// La planilla no redefine el producto existente.
	assert.Equal(t, "Producto p1", p.Name)
	assert.True(t, decimal.NewFromFloat(10.00).Equal(p.SalePrice))

	require.Len(t, store.movements, 1)
	assert.Equal(t, "Importación de planilla: reposicion.csv", store.movements[0].Reason)
}

func TestImport_FilaInvalidaNoTumbaElResto(t *testing.T) {
	store := newFakeStore()
	uc := inventory.NewImportProductsUseCase(&fakeTxRunner{store: store})

	result, err := uc.Execute(context.Background(), []dto.ImportRowRequest{
		{SKU: "", Name: "Sin SKU", SalePrice: "1.00", Quantity: 1},
		{SKU: "SKU-A", Name: "Válido", SalePrice: "2.00", Quantity: 3},
		{SKU: "SKU-B", Name: "Precio roto", SalePrice: "abc", Quantity: 1},
	}, "mixta.csv", "u1")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "fila 1")
	assert.Contains(t, result.Errors[1], "fila 3")
}

func TestImport_ReutilizaCategoriaExistente(t *testing.T) {
	store := newFakeStore()
	store.categories["cat1"] = &entity.Category{ID: "cat1", Name: "Bebidas", Active: true}
	uc := inventory.NewImportProductsUseCase(&fakeTxRunner{store: store})

	_, err := uc.Execute(context.Background(), []dto.ImportRowRequest{
		{SKU: "SKU-C", Name: "Refresco", SalePrice: "3.00", Quantity: 1, Category: "Bebidas"},
	}, "catalogo.csv", "u1")

	require.NoError(t, err)
	assert.Len(t, store.categories, 1, "no debe duplicarse la categoría")
	p, _ := (&fakeProductRepo{store: store}).GetBySKU("SKU-C")
	assert.Equal(t, "cat1", p.CategoryID)
}
