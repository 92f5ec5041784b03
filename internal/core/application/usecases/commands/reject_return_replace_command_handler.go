package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// RejectReturnReplaceCommandHandler rejects a pending request. The order falls
// back to delivered when it sits in a *_requested status and no other request
// of the order is still pending; otherwise its status is kept.
type RejectReturnReplaceCommandHandler struct {
	uowFactory UoWFactory
	locker     ports.OrderLocker
}

func NewRejectReturnReplaceCommandHandler(uowFactory UoWFactory, locker ports.OrderLocker) RejectReturnReplaceCommandHandler {
	return RejectReturnReplaceCommandHandler{uowFactory: uowFactory, locker: locker}
}

func (h RejectReturnReplaceCommandHandler) Handle(
	ctx context.Context,
	command RejectReturnReplaceCommand,
) (*returns.Request, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *returns.Request
	err := withLock(ctx, h.locker, command.RequestID(), func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		requestRepo := uow.ReturnRequestRepository()
		request, err := requestRepo.GetForUpdate(ctx, command.RequestID())
		if err != nil {
			return err
		}
		o, err := uow.OrderRepository().GetForUpdate(ctx, request.OrderID())
		if err != nil {
			return err
		}
		item, ok := o.Item(request.OrderItemID())
		if !ok {
			return errs.NewObjectNotFoundError("orderItem", request.OrderItemID().String())
		}
		products, err := uow.ProductRepository().Get(ctx, []kernel.UUID{item.ProductID()})
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return errs.NewObjectNotFoundError("product", item.ProductID().String())
		}
		if err = access.AuthorizeResolveRequest(command.Actor(), products[0].VendorID()); err != nil {
			return err
		}

		at := utcNow()
		if err = request.Reject(at, command.Reason()); err != nil {
			return err
		}

		siblings, err := requestRepo.ListByOrder(ctx, o.ID())
		if err != nil {
			return err
		}
		if o.Status().IsAwaitingDecision() && !hasOtherPending(siblings, request.ID()) {
			if err = o.RevertToDelivered(at); err != nil {
				return err
			}
		}

		if err = requestRepo.Update(ctx, request); err != nil {
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

func hasOtherPending(requests []*returns.Request, except kernel.UUID) bool {
	for _, r := range requests {
		if !r.ID().IsEqual(except) && r.Status() == returns.StatusPending {
			return true
		}
	}
	return false
}
