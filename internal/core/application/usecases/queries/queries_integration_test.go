package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// QueriesIntegrationTestSuite seeds two vendors and three orders:
//
//	first  (oldest, pending):   lamp (vendor A) x2, mug (vendor B) x1
//	second (pending):           mug (vendor B) x3
//	third  (newest, confirmed): lamp (vendor A) x1
type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database

	owner, vendorA, vendorB, admin access.Actor
	lamp, mug                      *product.Product
	first, second, third           *order.Order
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.Truncate())

	suite.owner = suite.actor(access.RoleCustomer)
	suite.vendorA = suite.actor(access.RoleVendor)
	suite.vendorB = suite.actor(access.RoleVendor)
	suite.admin = suite.actor(access.RoleAdmin)

	products := productrepo.NewGormProductRepository(suite.database.DB)
	var err error
	suite.lamp, err = product.NewProduct(kernel.NewUUID(), suite.vendorA.ID(), "Desk lamp", 10, true, true)
	suite.Require().NoError(err)
	suite.mug, err = product.NewProduct(kernel.NewUUID(), suite.vendorB.ID(), "Mug", 10, true, false)
	suite.Require().NoError(err)
	suite.Require().NoError(products.Add(ctx, suite.lamp))
	suite.Require().NoError(products.Add(ctx, suite.mug))

	base := time.Now().UTC().Truncate(time.Microsecond).Add(-time.Hour)
	suite.first = suite.order(base, line{suite.lamp, 2, "20.00"}, line{suite.mug, 1, "15.00"})
	suite.second = suite.order(base.Add(time.Minute), line{suite.mug, 3, "45.00"})
	suite.third = suite.order(base.Add(2*time.Minute), line{suite.lamp, 1, "10.00"})

	orders := orderrepo.NewGormOrderRepository(suite.database.DB, noopTracker{})
	for _, o := range []*order.Order{suite.first, suite.second, suite.third} {
		suite.Require().NoError(orders.Add(ctx, o))
	}
	suite.Require().NoError(suite.third.Confirm(base.Add(3 * time.Minute)))
	suite.Require().NoError(orders.Update(ctx, suite.third))
}

type line struct {
	product  *product.Product
	quantity int
	total    string
}

func (suite *QueriesIntegrationTestSuite) actor(role access.Role) access.Actor {
	a, err := access.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return a
}

func (suite *QueriesIntegrationTestSuite) order(createdAt time.Time, lines ...line) *order.Order {
	items := make([]*order.Item, 0, len(lines))
	for _, l := range lines {
		total, err := kernel.MoneyFromString(l.total)
		suite.Require().NoError(err)
		item, err := order.NewItem(kernel.NewUUID(), l.product.ID(), l.quantity, total)
		suite.Require().NoError(err)
		items = append(items, item)
	}
	o, err := order.NewOrder(kernel.NewUUID(), suite.owner.ID(), kernel.NewUUID(), items, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *QueriesIntegrationTestSuite) getOrder(orderID kernel.UUID, actor access.Actor) (*queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(orderID, actor)
	suite.Require().NoError(err)
	return queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)
}

func (suite *QueriesIntegrationTestSuite) listVendorOrders(
	actor access.Actor,
	status string,
	limit, offset int,
) (*queries.VendorOrdersPage, error) {
	query, err := queries.NewListVendorOrdersQuery(actor, status, limit, offset)
	suite.Require().NoError(err)
	return queries.NewListVendorOrdersQueryHandler(suite.database.DB).Handle(context.Background(), query)
}

func orderIDs(page *queries.VendorOrdersPage) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(page.Orders))
	for _, o := range page.Orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_Owner_SeesItemsAndRequests() {
	ctx := context.Background()
	lampLine := suite.first.Items()[0]
	reason := "flickers"
	request, err := returns.NewRequest(
		kernel.NewUUID(), suite.first.ID(), lampLine.ID(), suite.owner.ID(), suite.vendorA.ID(),
		returns.KindReturn, &reason, lampLine.TotalPrice(), time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(returnrepo.NewGormRequestRepository(suite.database.DB, noopTracker{}).Add(ctx, request))

	view, err := suite.getOrder(suite.first.ID(), suite.owner)

	suite.Require().NoError(err)
	suite.Equal(suite.first.ID(), view.ID)
	suite.Equal(order.Pending, view.Status)
	suite.Equal(order.PaymentPending, view.PaymentStatus)
	suite.Equal("35.00", view.Total.String())

	suite.Require().Len(view.Items, 2)
	suite.Equal("Desk lamp", view.Items[0].ProductName)
	suite.Equal(suite.vendorA.ID(), view.Items[0].VendorID)
	suite.Equal(2, view.Items[0].Quantity)
	suite.Equal("Mug", view.Items[1].ProductName)
	suite.Equal(suite.vendorB.ID(), view.Items[1].VendorID)

	suite.Require().Len(view.Requests, 1)
	suite.Equal(request.ID(), view.Requests[0].ID)
	suite.Equal(returns.KindReturn, view.Requests[0].Kind)
	suite.Equal(returns.StatusPending, view.Requests[0].Status)
	suite.Equal(returns.RefundPending, view.Requests[0].RefundStatus)
	suite.Require().NotNil(view.Requests[0].ReturnAmount)
	suite.Equal("20.00", view.Requests[0].ReturnAmount.String())
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_ConfirmedOrder_HasDeliveryDate() {
	view, err := suite.getOrder(suite.third.ID(), suite.admin)

	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, view.Status)
	suite.Require().NotNil(view.ConfirmedAt)
	suite.Require().NotNil(view.ExpectedDeliveryDate)
	suite.True(view.ExpectedDeliveryDate.Equal(view.ConfirmedAt.Add(order.DeliveryWindow)))
	suite.Empty(view.Requests)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_VendorIsForbidden() {
	_, err := suite.getOrder(suite.first.ID(), suite.vendorA)
	suite.ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_UnknownOrder_IsNotFound() {
	_, err := suite.getOrder(kernel.NewUUID(), suite.admin)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListVendorOrders_ScopesToVendorProducts() {
	page, err := suite.listVendorOrders(suite.vendorA, "", 0, 0)

	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{suite.third.ID(), suite.first.ID()}, orderIDs(page))
	suite.Equal(int64(2), page.Total)
	suite.Equal(map[order.Status]int64{order.Pending: 1, order.Confirmed: 1}, page.StatusCounts)
	suite.Equal(queries.DefaultPageLimit, page.Limit)

	first := page.Orders[1]
	suite.Require().Len(first.Items, 1)
	suite.Equal("Desk lamp", first.Items[0].ProductName)
	suite.Equal("20.00", first.ItemsTotal.String())
}

func (suite *QueriesIntegrationTestSuite) TestListVendorOrders_StatusFilter() {
	page, err := suite.listVendorOrders(suite.vendorA, "confirmed", 0, 0)

	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{suite.third.ID()}, orderIDs(page))
	suite.Equal(int64(1), page.Total)
	suite.Equal(int64(1), page.StatusCounts[order.Pending])
}

func (suite *QueriesIntegrationTestSuite) TestListVendorOrders_Paging() {
	page, err := suite.listVendorOrders(suite.vendorB, "", 1, 1)

	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{suite.first.ID()}, orderIDs(page))
	suite.Equal(int64(2), page.Total)
}

func (suite *QueriesIntegrationTestSuite) TestListVendorOrders_AdminSeesEverything() {
	page, err := suite.listVendorOrders(suite.admin, "", 0, 0)

	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{suite.third.ID(), suite.second.ID(), suite.first.ID()}, orderIDs(page))
	suite.Equal(int64(3), page.Total)
	suite.Len(page.Orders[2].Items, 2)
	suite.Equal("35.00", page.Orders[2].ItemsTotal.String())
}

func (suite *QueriesIntegrationTestSuite) TestListVendorOrders_NoOrders() {
	page, err := suite.listVendorOrders(suite.actor(access.RoleVendor), "", 0, 0)

	suite.Require().NoError(err)
	suite.Empty(page.Orders)
	suite.Zero(page.Total)
	suite.Empty(page.StatusCounts)
}

func (suite *QueriesIntegrationTestSuite) TestListVendorOrders_CustomerIsForbidden() {
	_, err := suite.listVendorOrders(suite.owner, "", 0, 0)
	suite.ErrorIs(err, errs.ErrAccessDenied)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
