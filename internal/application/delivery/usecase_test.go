package delivery_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribuidora-api/internal/application/delivery"
	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	orders     map[string]*entity.Order
	deliveries map[string]*entity.Delivery
	users      map[string]*entity.User
	customers  map[string]*entity.Customer
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:     make(map[string]*entity.Order),
		deliveries: make(map[string]*entity.Delivery),
		users:      make(map[string]*entity.User),
		customers:  make(map[string]*entity.Customer),
	}
}

type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) RunDelivery(_ context.Context, fn func(
	repository.OrderRepository,
	repository.DeliveryRepository,
) error) error {
	return fn(&fakeOrderRepo{store: r.store}, &fakeDeliveryRepo{store: r.store})
}

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(o *entity.Order) error                  { r.store.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) CreateItem(*entity.OrderItem) error            { return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error)      { return r.store.orders[id], nil }
func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.store.orders[id], nil }
func (r *fakeOrderRepo) GetByToken(string) (*entity.Order, error)      { return nil, nil }
func (r *fakeOrderRepo) GetItems(string) ([]*entity.OrderItem, error)  { return nil, nil }
func (r *fakeOrderRepo) List(string, int, int) ([]*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	r.store.orders[id].Status = status
	return nil
}
func (r *fakeOrderRepo) UpdatePayment(o *entity.Order) error { r.store.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) SetPreference(string, string, string, string) error {
	return nil
}

type fakeDeliveryRepo struct{ store *fakeStore }

func (r *fakeDeliveryRepo) Create(d *entity.Delivery) error { r.store.deliveries[d.ID] = d; return nil }
func (r *fakeDeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	return r.store.deliveries[id], nil
}
func (r *fakeDeliveryRepo) GetByOrderID(orderID string) (*entity.Delivery, error) {
	for _, d := range r.store.deliveries {
		if d.OrderID == orderID {
			return d, nil
		}
	}
	return nil, nil
}
func (r *fakeDeliveryRepo) List(status, deliveryUserID string, _, _ int) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.store.deliveries {
		if (status == "" || d.Status == status) && (deliveryUserID == "" || d.DeliveryUserID == deliveryUserID) {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *fakeDeliveryRepo) Update(d *entity.Delivery) error { r.store.deliveries[d.ID] = d; return nil }

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(u *entity.User) error              { r.store.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error)  { return r.store.users[id], nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)  { return nil, nil }
func (r *fakeUserRepo) ListByRole(string, bool) ([]*entity.User, error) {
	return nil, nil
}

type fakeCustomerRepo struct{ store *fakeStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.store.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.store.customers[id], nil
}
func (r *fakeCustomerRepo) GetByPhone(string) (*entity.Customer, error)       { return nil, nil }
func (r *fakeCustomerRepo) List(string, int, int) ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(*entity.Customer) error                     { return nil }
func (r *fakeCustomerRepo) Deactivate(string) error                           { return nil }

type recordingNotifier struct{ delivered []string }

func (n *recordingNotifier) OrderDelivered(_ context.Context, order *entity.Order, _ *entity.Customer) {
	n.delivered = append(n.delivered, order.ID)
}

func seedCourier(store *fakeStore, id string) *entity.User {
	u := &entity.User{ID: id, Name: "Repartidor " + id, Role: entity.RoleDelivery, Active: true}
	store.users[id] = u
	return u
}

func seedOrder(store *fakeStore, id, status string) *entity.Order {
	o := &entity.Order{ID: id, CustomerID: "c1", Status: status, PaymentStatus: entity.PaymentStatusPending}
	store.orders[id] = o
	store.customers["c1"] = &entity.Customer{ID: "c1", Name: "María", Email: "maria@example.com", Active: true}
	return o
}

func newUseCase(store *fakeStore, notifier delivery.Notifier) *delivery.UseCase {
	return delivery.NewUseCase(
		&fakeTxRunner{store: store},
		&fakeDeliveryRepo{store: store},
		&fakeOrderRepo{store: store},
		&fakeUserRepo{store: store},
		&fakeCustomerRepo{store: store},
		notifier,
	)
}

var staffActor = delivery.Actor{UserID: "admin1", Role: entity.RoleAdmin}

// ──────────────────────────────────────────────────────────────────────────────

func TestAssign_PedidoConfirmadoPasaAPreparing(t *testing.T) {
	store := newFakeStore()
	seedCourier(store, "rep1")
	seedOrder(store, "o1", entity.OrderStatusConfirmed)
	uc := newUseCase(store, nil)

	dlv, err := uc.Assign(context.Background(), "o1", &dto.AssignDeliveryRequest{DeliveryUserID: "rep1"})
	require.NoError(t, err)

	assert.Equal(t, entity.DeliveryStatusPending, dlv.Status)
	assert.Equal(t, "rep1", dlv.DeliveryUserID)
	assert.Equal(t, entity.OrderStatusPreparing, store.orders["o1"].Status)
}

func TestAssign_PedidoNoListo(t *testing.T) {
	store := newFakeStore()
	seedCourier(store, "rep1")
	uc := newUseCase(store, nil)

	for _, status := range []string{
		entity.OrderStatusPending,
		entity.OrderStatusDelivered,
		entity.OrderStatusCancelled,
	} {
		seedOrder(store, "o-"+status, status)
		_, err := uc.Assign(context.Background(), "o-"+status, &dto.AssignDeliveryRequest{DeliveryUserID: "rep1"})
		assert.ErrorIs(t, err, domain.ErrOrderNotReady, "estado %s no admite asignación", status)
	}
}

func TestAssign_YaAsignado(t *testing.T) {
	store := newFakeStore()
	seedCourier(store, "rep1")
	seedCourier(store, "rep2")
	seedOrder(store, "o1", entity.OrderStatusConfirmed)
	uc := newUseCase(store, nil)

	_, err := uc.Assign(context.Background(), "o1", &dto.AssignDeliveryRequest{DeliveryUserID: "rep1"})
	require.NoError(t, err)

	_, err = uc.Assign(context.Background(), "o1", &dto.AssignDeliveryRequest{DeliveryUserID: "rep2"})
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)
}

func TestAssign_RepartidorInvalido(t *testing.T) {
	store := newFakeStore()
	seedOrder(store, "o1", entity.OrderStatusConfirmed)
	// Usuario activo pero sin rol delivery.
	store.users["u1"] = &entity.User{ID: "u1", Role: entity.RoleAttendant, Active: true}
	// Repartidor desactivado.
	store.users["rep-off"] = &entity.User{ID: "rep-off", Role: entity.RoleDelivery, Active: false}
	uc := newUseCase(store, nil)

	for _, id := range []string{"ghost", "u1", "rep-off"} {
		_, err := uc.Assign(context.Background(), "o1", &dto.AssignDeliveryRequest{DeliveryUserID: id})
		assert.ErrorIs(t, err, domain.ErrCourierNotFound, "usuario %s no debe ser asignable", id)
	}
}

func TestAssign_ReasignaTrasFallo(t *testing.T) {
	store := newFakeStore()
	seedCourier(store, "rep1")
	seedCourier(store, "rep2")
	seedOrder(store, "o1", entity.OrderStatusConfirmed)
	uc := newUseCase(store, nil)

	first, err := uc.Assign(context.Background(), "o1", &dto.AssignDeliveryRequest{DeliveryUserID: "rep1"})
	require.NoError(t, err)

	// El repartidor marca la entrega como fallida: el pedido vuelve a pending.
	_, err = uc.UpdateStatus(context.Background(), first.ID,
		&dto.UpdateDeliveryStatusRequest{Status: entity.DeliveryStatusFailed, Notes: "cliente ausente"},
		delivery.Actor{UserID: "rep1", Role: entity.RoleDelivery})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, store.orders["o1"].Status)

	// Tras reconfirmar, se reasigna el MISMO registro a otro repartidor.
	store.orders["o1"].Status = entity.OrderStatusConfirmed
	second, err := uc.Assign(context.Background(), "o1", &dto.AssignDeliveryRequest{DeliveryUserID: "rep2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "no debe crearse una segunda entrega")
	assert.Equal(t, "rep2", second.DeliveryUserID)
	assert.Equal(t, entity.DeliveryStatusPending, second.Status)
	assert.Len(t, store.deliveries, 1)
}

func TestUpdateStatus_EntregadaCierraElPedido(t *testing.T) {
	store := newFakeStore()
	seedCourier(store, "rep1")
	seedOrder(store, "o1", entity.OrderStatusConfirmed)
	notifier := &recordingNotifier{}
	uc := newUseCase(store, notifier)

	dlv, err := uc.Assign(context.Background(), "o1", &dto.AssignDeliveryRequest{DeliveryUserID: "rep1"})
	require.NoError(t, err)

	updated, err := uc.UpdateStatus(context.Background(), dlv.ID,
		&dto.UpdateDeliveryStatusRequest{Status: entity.DeliveryStatusDelivered, DeliveryProof: "firma.jpg"},
		delivery.Actor{UserID: "rep1", Role: entity.RoleDelivery})
	require.NoError(t, err)

	assert.Equal(t, entity.DeliveryStatusDelivered, updated.Status)
	assert.Equal(t, "firma.jpg", updated.DeliveryProof)
	require.NotNil(t, updated.DeliveredAt)
	assert.Equal(t, entity.OrderStatusDelivered, store.orders["o1"].Status)

	// Notificación al cliente tras el commit.
	assert.Equal(t, []string{"o1"}, notifier.delivered)
}

func TestUpdateStatus_OtroRepartidorProhibido(t *testing.T) {
	store := newFakeStore()
	seedCourier(store, "rep1")
	seedCourier(store, "rep2")
	seedOrder(store, "o1", entity.OrderStatusConfirmed)
	uc := newUseCase(store, nil)

	dlv, err := uc.Assign(context.Background(), "o1", &dto.AssignDeliveryRequest{DeliveryUserID: "rep1"})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), dlv.ID,
		&dto.UpdateDeliveryStatusRequest{Status: entity.DeliveryStatusInTransit},
		delivery.Actor{UserID: "rep2", Role: entity.RoleDelivery})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El staff sí puede tocar cualquier entrega.
	_, err = uc.UpdateStatus(context.Background(), dlv.ID,
		&dto.UpdateDeliveryStatusRequest{Status: entity.DeliveryStatusInTransit}, staffActor)
	assert.NoError(t, err)
}

func TestUpdateStatus_EntregaCerradaInmutable(t *testing.T) {
	store := newFakeStore()
	seedCourier(store, "rep1")
	seedOrder(store, "o1", entity.OrderStatusConfirmed)
	uc := newUseCase(store, nil)

	dlv, err := uc.Assign(context.Background(), "o1", &dto.AssignDeliveryRequest{DeliveryUserID: "rep1"})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), dlv.ID,
		&dto.UpdateDeliveryStatusRequest{Status: entity.DeliveryStatusDelivered}, staffActor)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), dlv.ID,
		&dto.UpdateDeliveryStatusRequest{Status: entity.DeliveryStatusFailed}, staffActor)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store, nil)

	_, err := uc.UpdateStatus(context.Background(), "d1",
		&dto.UpdateDeliveryStatusRequest{Status: "lost"}, staffActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_RepartidorSoloVeSuCola(t *testing.T) {
	store := newFakeStore()
	store.deliveries["d1"] = &entity.Delivery{ID: "d1", OrderID: "o1", DeliveryUserID: "rep1", Status: entity.DeliveryStatusPending}
	store.deliveries["d2"] = &entity.Delivery{ID: "d2", OrderID: "o2", DeliveryUserID: "rep2", Status: entity.DeliveryStatusPending}
	uc := newUseCase(store, nil)

	mine, err := uc.List("", delivery.Actor{UserID: "rep1", Role: entity.RoleDelivery}, dto.PageRequest{Limit: 20})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "d1", mine[0].ID)

	all, err := uc.List("", staffActor, dto.PageRequest{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
