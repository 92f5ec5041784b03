package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand is the generic forward fulfillment step. Only the
// fulfillment statuses are accepted as input; anything else is a validation
// error, not a transition error.
type UpdateOrderStatusCommand struct {
	orderID kernel.UUID
	actor   access.Actor
	status  order.Status
	guard   guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderID kernel.UUID, actor access.Actor, status string) (UpdateOrderStatusCommand, error) {
	target, statusErr := parseFulfillmentStatus(status)
	if err := errors.Join(requireActor(actor), orderID.Validate(), statusErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return UpdateOrderStatusCommand{
		orderID: orderID,
		actor:   actor,
		status:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

func (c UpdateOrderStatusCommand) Actor() access.Actor { return c.actor }

func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func parseFulfillmentStatus(s string) (order.Status, error) {
	if s == "" {
		return order.Unknown, errs.NewValueIsRequiredError("status")
	}
	status, err := order.ParseStatus(s)
	if err != nil {
		return order.Unknown, err
	}
	switch status {
	case order.Confirmed, order.Dispatched, order.Shipped, order.Delivered:
		return status, nil
	default:
		return order.Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not one of confirmed, dispatched, shipped, delivered", status),
		)
	}
}
