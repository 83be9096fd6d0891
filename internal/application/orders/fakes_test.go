package orders_test

import (
	"context"
	"time"

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete. Implementan los
// puertos de repositorio con maps y permiten inspeccionar el estado final
// (stock, movimientos, pedidos) tras ejecutar cada caso de uso.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	orders    map[string]*entity.Order
	items     map[string][]*entity.OrderItem
	customers map[string]*entity.Customer
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[string]*entity.Product),
		orders:    make(map[string]*entity.Order),
		items:     make(map[string][]*entity.OrderItem),
		customers: make(map[string]*entity.Customer),
	}
}

// fakeTxRunner ejecuta el closure directamente sobre el estado dado y, si el
// closure falla, restaura un snapshot previo: simula el rollback de la tx real.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) RunOrder(_ context.Context, fn func(
	repository.OrderRepository,
	repository.ProductRepository,
	repository.StockMovementRepository,
	repository.CustomerRepository,
) error) error {
	snapshot := r.store.clone()
	err := fn(
		&fakeOrderRepo{store: r.store},
		&fakeProductRepo{store: r.store},
		&fakeMovementRepo{store: r.store},
		&fakeCustomerRepo{store: r.store},
	)
	if err != nil {
		*r.store = *snapshot
	}
	return err
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, o := range s.orders {
		co := *o
		c.orders[id] = &co
	}
	for id, items := range s.items {
		c.items[id] = append([]*entity.OrderItem(nil), items...)
	}
	for id, cu := range s.customers {
		cc := *cu
		c.customers[id] = &cc
	}
	c.movements = append([]*entity.StockMovement(nil), s.movements...)
	return c
}

// ───── ProductRepository ─────

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

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

func (r *fakeProductRepo) List(string, bool, int, int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) ListBelowMinimum() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.Active && p.CurrentStock <= p.MinimumStock {
			out = append(out, p)
		}
	}
	return out, nil
}

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

// ───── StockMovementRepository ─────

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	m.CreatedAt = time.Now()
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.store.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

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

// ───── OrderRepository ─────

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	o.CreatedAt = time.Now()
	r.store.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) CreateItem(item *entity.OrderItem) error {
	r.store.items[item.OrderID] = append(r.store.items[item.OrderID], item)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.store.orders[id], nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.store.orders[id], nil
}

func (r *fakeOrderRepo) GetByToken(token string) (*entity.Order, error) {
	for _, o := range r.store.orders {
		if o.OrderToken == token {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	return r.store.items[orderID], nil
}

func (r *fakeOrderRepo) List(status string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.store.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	r.store.orders[id].Status = status
	return nil
}

func (r *fakeOrderRepo) UpdatePayment(o *entity.Order) error {
	r.store.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) SetPreference(id, preferenceID, paymentMethod, paymentStatus string) error {
	o := r.store.orders[id]
	o.PreferenceID = preferenceID
	o.PaymentMethod = paymentMethod
	o.PaymentStatus = paymentStatus
	return nil
}

// ───── CustomerRepository ─────

type fakeCustomerRepo struct{ store *fakeStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.store.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.store.customers[id], nil
}

func (r *fakeCustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	for _, c := range r.store.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(string, int, int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.store.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Deactivate(id string) error {
	r.store.customers[id].Active = false
	return nil
}
