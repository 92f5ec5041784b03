package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

type MockReturnRequestRepository struct{ mock.Mock }

func (m *MockReturnRequestRepository) Add(ctx context.Context, r *returns.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnRequestRepository) Update(ctx context.Context, r *returns.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnRequestRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Request), args.Error(1)
}

func (m *MockReturnRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*returns.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Request), args.Error(1)
}

func (m *MockReturnRequestRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Request, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returns.Request), args.Error(1)
}

func (m *MockReturnRequestRepository) ExistsOpen(ctx context.Context, orderItemID kernel.UUID, kind returns.Kind) (bool, error) {
	args := m.Called(ctx, orderItemID, kind)
	return args.Bool(0), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

// MockUoW satisfies OrderUoW, UoW and OutboxUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) ReturnRequestRepository() ports.ReturnRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnRequestRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

type MockOutboxUoWFactory struct{ uow *MockUoW }

func (f MockOutboxUoWFactory) Create() commands.OutboxUoW { return f.uow }

type MockRefundGateway struct{ mock.Mock }

func (m *MockRefundGateway) Refund(ctx context.Context, refund ports.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type MockOrderLocker struct{ mock.Mock }

func (m *MockOrderLocker) Lock(ctx context.Context, id kernel.UUID) (ports.UnlockFunc, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.UnlockFunc), args.Error(1)
}

// world wires a MockUoW to one set of repository mocks.
type world struct {
	uow      *MockUoW
	orders   *MockOrderRepository
	products *MockProductRepository
	requests *MockReturnRequestRepository
	refunds  *MockRefundGateway
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		uow:      new(MockUoW),
		orders:   new(MockOrderRepository),
		products: new(MockProductRepository),
		requests: new(MockReturnRequestRepository),
		refunds:  new(MockRefundGateway),
	}
	w.uow.On("OrderRepository").Return(w.orders).Maybe()
	w.uow.On("ProductRepository").Return(w.products).Maybe()
	w.uow.On("ReturnRequestRepository").Return(w.requests).Maybe()
	w.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return w
}

func (w *world) begin(ctx context.Context) {
	w.uow.On("Begin", ctx).Return(nil).Once()
}

func (w *world) expectCommit(ctx context.Context) {
	w.uow.On("Commit", ctx).Return(nil).Once()
}

func (w *world) orderFactory() MockOrderUoWFactory { return MockOrderUoWFactory{uow: w.uow} }

func (w *world) factory() MockUoWFactory { return MockUoWFactory{uow: w.uow} }

func (w *world) assertExpectations(t *testing.T) {
	t.Helper()
	w.uow.AssertExpectations(t)
	w.orders.AssertExpectations(t)
	w.products.AssertExpectations(t)
	w.requests.AssertExpectations(t)
	w.refunds.AssertExpectations(t)
}

func (w *world) assertNotCommitted(t *testing.T) {
	t.Helper()
	w.uow.AssertNotCalled(t, "Commit", mock.Anything)
	w.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	w.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func newActor(t *testing.T, role access.Role) access.Actor {
	t.Helper()
	actor, err := access.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func newProduct(vendor access.Actor, name string, stock int, returnable, replaceable bool) *product.Product {
	return product.RestoreProduct(kernel.NewUUID(), vendor.ID(), name, stock, returnable, replaceable)
}

type line struct {
	product  *product.Product
	quantity int
	total    string
}

func orderFor(t *testing.T, owner access.Actor, status order.Status, lines ...line) *order.Order {
	t.Helper()
	items := make([]*order.Item, 0, len(lines))
	for _, l := range lines {
		total, err := kernel.MoneyFromString(l.total)
		require.NoError(t, err)
		item, err := order.NewItem(kernel.NewUUID(), l.product.ID(), l.quantity, total)
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.RestoreOrder(order.State{
		ID:                kernel.NewUUID(),
		UserID:            owner.ID(),
		ShippingAddressID: kernel.NewUUID(),
		Status:            status,
		PaymentStatus:     order.PaymentPending,
		Items:             items,
		CreatedAt:         time.Now().UTC(),
	})
	require.NoError(t, err)
	return o
}

func pendingRequest(t *testing.T, o *order.Order, item *order.Item, vendor access.Actor, kind returns.Kind) *returns.Request {
	t.Helper()
	r, err := returns.NewRequest(
		kernel.NewUUID(), o.ID(), item.ID(), o.UserID(), vendor.ID(),
		kind, nil, item.TotalPrice(), time.Now().UTC(),
	)
	require.NoError(t, err)
	return r
}
