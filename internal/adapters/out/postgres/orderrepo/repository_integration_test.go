package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(totals ...string) *order.Order {
	items := make([]*order.Item, 0, len(totals))
	for i, total := range totals {
		price, err := kernel.MoneyFromString(total)
		suite.Require().NoError(err)
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), i+1, price)
		suite.Require().NoError(err)
		items = append(items, item)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), items, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresOrderWithItems() {
	ctx := context.Background()
	o := suite.newOrder("19.99", "5", "120.50")

	suite.Require().NoError(suite.repository.Add(ctx, o))
	loaded, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.True(o.ID().IsEqual(loaded.ID()))
	suite.True(o.UserID().IsEqual(loaded.UserID()))
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(order.PaymentPending, loaded.PaymentStatus())
	suite.Require().Len(loaded.Items(), 3)
	for i, item := range o.Items() {
		got := loaded.Items()[i]
		suite.True(item.ID().IsEqual(got.ID()))
		suite.True(item.ProductID().IsEqual(got.ProductID()))
		suite.Equal(item.Quantity(), got.Quantity())
		suite.True(item.TotalPrice().IsEqual(got.TotalPrice()))
	}
	suite.Equal("145.49", loaded.Total().String())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleFields() {
	ctx := context.Background()
	o := suite.newOrder("10")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(o.Confirm(now))
	reason := "changed my mind"
	suite.Require().NoError(o.Cancel(now, &reason))
	suite.Require().NoError(o.MarkRefunded(o.Total(), now))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, loaded.Status())
	suite.Equal(order.PaymentPaid, loaded.PaymentStatus())
	suite.Require().NotNil(loaded.CancelledAt())
	suite.True(now.Equal(*loaded.CancelledAt()))
	suite.Require().NotNil(loaded.ExpectedDeliveryDate())
	suite.True(now.Add(order.DeliveryWindow).Equal(*loaded.ExpectedDeliveryDate()))
	suite.Equal(reason, *loaded.CancellationReason())
	suite.Nil(loaded.RejectedAt())
	suite.Len(loaded.Items(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder("1"))

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_BlocksSecondLocker() {
	ctx := context.Background()
	o := suite.newOrder("3")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	tx := suite.database.DB.Begin()
	defer tx.Rollback()
	_, err := orderrepo.NewGormOrderRepository(tx, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	other := suite.database.DB.Begin()
	defer other.Rollback()
	suite.Require().NoError(other.Exec("SET LOCAL lock_timeout = '200ms'").Error)
	_, err = orderrepo.NewGormOrderRepository(other, suite.tracker).GetForUpdate(ctx, o.ID())

	suite.Error(err)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
