package redis_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type OrderLockerIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
}

func (suite *OrderLockerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)
	suite.client = goredis.NewClient(&goredis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *OrderLockerIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderLockerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *OrderLockerIntegrationTestSuite) locker(ttl, wait time.Duration) *redis.OrderLocker {
	locker, err := redis.NewOrderLocker(suite.client, ttl, wait)
	suite.Require().NoError(err)
	return locker
}

func (suite *OrderLockerIntegrationTestSuite) TestHeldLock_BlocksSecondHolder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	locker := suite.locker(time.Minute, 100*time.Millisecond)

	unlock, err := locker.Lock(ctx, orderID)
	suite.Require().NoError(err)

	_, err = locker.Lock(ctx, orderID)
	suite.ErrorIs(err, errs.ErrResourceIsLocked)

	suite.Require().NoError(unlock(ctx))
	unlockAgain, err := locker.Lock(ctx, orderID)
	suite.Require().NoError(err)
	suite.NoError(unlockAgain(ctx))
}

func (suite *OrderLockerIntegrationTestSuite) TestWaiter_AcquiresAfterRelease() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	locker := suite.locker(time.Minute, 2*time.Second)

	unlock, err := locker.Lock(ctx, orderID)
	suite.Require().NoError(err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = unlock(context.Background())
	}()

	start := time.Now()
	second, err := locker.Lock(ctx, orderID)
	suite.Require().NoError(err)
	suite.GreaterOrEqual(time.Since(start), 50*time.Millisecond)
	suite.NoError(second(ctx))
}

func (suite *OrderLockerIntegrationTestSuite) TestDifferentOrders_DoNotContend() {
	ctx := context.Background()
	locker := suite.locker(time.Minute, 0)

	first, err := locker.Lock(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	second, err := locker.Lock(ctx, kernel.NewUUID())
	suite.Require().NoError(err)

	suite.NoError(first(ctx))
	suite.NoError(second(ctx))
}

func (suite *OrderLockerIntegrationTestSuite) TestExpiredLock_ReleaseKeepsNewOwner() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	locker := suite.locker(100*time.Millisecond, 0)

	stale, err := locker.Lock(ctx, orderID)
	suite.Require().NoError(err)
	time.Sleep(250 * time.Millisecond)

	current, err := locker.Lock(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().NoError(stale(ctx))
	_, err = locker.Lock(ctx, orderID)
	suite.ErrorIs(err, errs.ErrResourceIsLocked)

	suite.NoError(current(ctx))
}

func (suite *OrderLockerIntegrationTestSuite) TestCancelledContext_StopsWaiting() {
	orderID := kernel.NewUUID()
	locker := suite.locker(time.Minute, time.Minute)

	unlock, err := locker.Lock(context.Background(), orderID)
	suite.Require().NoError(err)
	defer func() { _ = unlock(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, orderID)
	suite.Error(err)
	suite.NotErrorIs(err, errs.ErrResourceIsLocked)
	suite.ErrorIs(ctx.Err(), context.DeadlineExceeded)
}

func (suite *OrderLockerIntegrationTestSuite) TestNewOrderLocker_Validates() {
	_, err := redis.NewOrderLocker(nil, time.Second, 0)
	suite.ErrorIs(err, errs.ErrValueIsRequired)

	_, err = redis.NewOrderLocker(suite.client, 0, 0)
	suite.ErrorIs(err, errs.ErrValueIsOutOfRange)

	_, err = redis.NewOrderLocker(suite.client, time.Second, -time.Second)
	suite.ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func TestOrderLockerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderLockerIntegrationTestSuite))
}
