package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
)

// The interfaces below are satisfied by the command and query handlers of the
// application layer.

type CancelOrderHandler interface {
	Handle(ctx context.Context, command commands.CancelOrderCommand) (*order.Order, error)
}

type VendorCancelOrderHandler interface {
	Handle(ctx context.Context, command commands.VendorCancelOrderCommand) (*order.Order, error)
}

type ConfirmOrderHandler interface {
	Handle(ctx context.Context, command commands.ConfirmOrderCommand) (*order.Order, error)
}

type RejectOrderHandler interface {
	Handle(ctx context.Context, command commands.RejectOrderCommand) (*order.Order, error)
}

type UpdateOrderStatusHandler interface {
	Handle(ctx context.Context, command commands.UpdateOrderStatusCommand) (*order.Order, error)
}

type CreateReturnReplaceHandler interface {
	Handle(ctx context.Context, command commands.CreateReturnReplaceCommand) (*returns.Request, error)
}

type ApproveReturnReplaceHandler interface {
	Handle(ctx context.Context, command commands.ApproveReturnReplaceCommand) (*returns.Request, error)
}

type RejectReturnReplaceHandler interface {
	Handle(ctx context.Context, command commands.RejectReturnReplaceCommand) (*returns.Request, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderView, error)
}

type ListVendorOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListVendorOrdersQuery) (*queries.VendorOrdersPage, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CancelOrder          CancelOrderHandler
	VendorCancelOrder    VendorCancelOrderHandler
	ConfirmOrder         ConfirmOrderHandler
	RejectOrder          RejectOrderHandler
	UpdateOrderStatus    UpdateOrderStatusHandler
	CreateReturnReplace  CreateReturnReplaceHandler
	ApproveReturnReplace ApproveReturnReplaceHandler
	RejectReturnReplace  RejectReturnReplaceHandler
	GetOrder             GetOrderHandler
	ListVendorOrders     ListVendorOrdersHandler
}
