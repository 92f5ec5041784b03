package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateReturnReplaceCommandHandler opens a pending request and, unless the
// order already waits on one, moves the order to {kind}_requested.
//
// Preconditions, checked in this order:
//   - the caller owns the order
//   - the item belongs to the order
//   - the product allows the kind
//   - the order is delivered and not already processed for the kind
//   - no pending or approved request of the kind exists for the item
type CreateReturnReplaceCommandHandler struct {
	uowFactory UoWFactory
	locker     ports.OrderLocker
}

func NewCreateReturnReplaceCommandHandler(uowFactory UoWFactory, locker ports.OrderLocker) CreateReturnReplaceCommandHandler {
	return CreateReturnReplaceCommandHandler{uowFactory: uowFactory, locker: locker}
}

func (h CreateReturnReplaceCommandHandler) Handle(
	ctx context.Context,
	command CreateReturnReplaceCommand,
) (*returns.Request, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *returns.Request
	err := withLock(ctx, h.locker, command.OrderID(), func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
		if err != nil {
			return err
		}
		if err = access.AuthorizeRequestReturn(command.Actor(), o.UserID()); err != nil {
			return err
		}
		item, ok := o.Item(command.OrderItemID())
		if !ok {
			return errs.NewObjectNotFoundError("orderItem", command.OrderItemID().String())
		}

		products, err := uow.ProductRepository().Get(ctx, []kernel.UUID{item.ProductID()})
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return errs.NewObjectNotFoundError("product", item.ProductID().String())
		}
		p := products[0]
		if err = services.NewReturnPolicy().CheckRequestAllowed(p, command.Kind()); err != nil {
			return err
		}
		if o.Status() == order.Cancelled || !o.Status().IsPostDelivery() {
			return errs.NewTransitionIsInvalidError("order", o.Status().String(), requestedStatusName(command.Kind()))
		}

		requestRepo := uow.ReturnRequestRepository()
		exists, err := requestRepo.ExistsOpen(ctx, item.ID(), command.Kind())
		if err != nil {
			return err
		}
		if exists {
			return errs.NewPolicyViolationError(services.RuleDuplicateRequest, item.ID().String())
		}

		at := utcNow()
		request, err := returns.NewRequest(
			kernel.NewUUID(),
			o.ID(),
			item.ID(),
			command.Actor().ID(),
			p.VendorID(),
			command.Kind(),
			command.Reason(),
			item.TotalPrice(),
			at,
		)
		if err != nil {
			return err
		}
		if err = o.OpenReturnReplace(command.Kind(), at); err != nil {
			return err
		}

		if err = requestRepo.Add(ctx, request); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		result = request
		return nil
	})
	return result, err
}

func requestedStatusName(kind returns.Kind) string {
	return kind.String() + "_requested"
}
