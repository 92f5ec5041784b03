package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/payments"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locker     ports.OrderLocker
	refunds    ports.RefundGateway
	logger     *slog.Logger
}

// NewCompositionRoot wires the use cases. A nil locker disables the per-order
// lock; row locks still serialize writers.
func NewCompositionRoot(config Config, gormDB *gorm.DB, locker ports.OrderLocker, logger *slog.Logger) CompositionRoot {
	if locker == nil {
		locker = commands.NoLocking{}
	}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     locker,
		refunds:    payments.NewManualRefundGateway(logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.refunds, c.locker)
}

func (c *CompositionRoot) CreateVendorCancelOrderCommandHandler() commands.VendorCancelOrderCommandHandler {
	return commands.NewVendorCancelOrderCommandHandler(c.orderUoWFactory(), c.refunds, c.locker)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateCreateReturnReplaceCommandHandler() commands.CreateReturnReplaceCommandHandler {
	return commands.NewCreateReturnReplaceCommandHandler(c.uoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateApproveReturnReplaceCommandHandler() commands.ApproveReturnReplaceCommandHandler {
	return commands.NewApproveReturnReplaceCommandHandler(c.uoWFactory(), c.refunds, c.locker)
}

func (c *CompositionRoot) CreateRejectReturnReplaceCommandHandler() commands.RejectReturnReplaceCommandHandler {
	return commands.NewRejectReturnReplaceCommandHandler(c.uoWFactory(), c.locker)
}

func (c *CompositionRoot) CreatePublishOutboxEventsCommandHandler(
	publisher ports.EventPublisher,
) commands.PublishOutboxEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOutboxEventsCommandHandler(f, publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListVendorOrdersQueryHandler() queries.ListVendorOrdersQueryHandler {
	return queries.NewListVendorOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CancelOrder:          c.CreateCancelOrderCommandHandler(),
		VendorCancelOrder:    c.CreateVendorCancelOrderCommandHandler(),
		ConfirmOrder:         c.CreateConfirmOrderCommandHandler(),
		RejectOrder:          c.CreateRejectOrderCommandHandler(),
		UpdateOrderStatus:    c.CreateUpdateOrderStatusCommandHandler(),
		CreateReturnReplace:  c.CreateCreateReturnReplaceCommandHandler(),
		ApproveReturnReplace: c.CreateApproveReturnReplaceCommandHandler(),
		RejectReturnReplace:  c.CreateRejectReturnReplaceCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListVendorOrders:     c.CreateListVendorOrdersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager(publisher ports.EventPublisher) (*jobs.JobManager, error) {
	return jobs.NewJobManager(c.CreatePublishOutboxEventsCommandHandler(publisher), c.config.OutboxBatchSize, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
