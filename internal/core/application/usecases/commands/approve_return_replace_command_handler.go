package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// RefundReasonReturned is passed to the refund gateway for processed returns.
const RefundReasonReturned = "item returned"

// ApproveReturnReplaceCommandHandler approves a pending request and processes
// it in the same transaction.
//
//   - return: refund the captured amount, mark the order refunded, move it to
//     return_processed and put the item quantity back in stock
//   - replace: move the order to replace_processed; stock is unchanged
//
// The lock is taken on the request id; the order row lock serializes the
// request against other mutations of its order.
type ApproveReturnReplaceCommandHandler struct {
	uowFactory UoWFactory
	refunds    ports.RefundGateway
	locker     ports.OrderLocker
}

func NewApproveReturnReplaceCommandHandler(
	uowFactory UoWFactory,
	refunds ports.RefundGateway,
	locker ports.OrderLocker,
) ApproveReturnReplaceCommandHandler {
	return ApproveReturnReplaceCommandHandler{uowFactory: uowFactory, refunds: refunds, locker: locker}
}

func (h ApproveReturnReplaceCommandHandler) Handle(
	ctx context.Context,
	command ApproveReturnReplaceCommand,
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

		productRepo := uow.ProductRepository()
		products, err := productRepo.GetForUpdate(ctx, []kernel.UUID{item.ProductID()})
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
		if err = request.Approve(at); err != nil {
			return err
		}
		if err = request.Process(at); err != nil {
			return err
		}
		if err = o.CompleteReturnReplace(request.Kind(), at); err != nil {
			return err
		}

		if request.Kind() == returns.KindReturn {
			index := indexProducts(products)
			changed, err := services.NewStockReconciler().Restore(index, []services.RestockLine{
				{ProductID: item.ProductID(), Quantity: item.Quantity()},
			})
			if err != nil {
				return err
			}
			if err = saveProducts(ctx, productRepo, changed); err != nil {
				return err
			}

			amount := item.TotalPrice()
			if request.ReturnAmount() != nil {
				amount = *request.ReturnAmount()
			}
			requestID := request.ID()
			if err = h.refunds.Refund(ctx, ports.Refund{
				OrderID:   o.ID(),
				UserID:    o.UserID(),
				RequestID: &requestID,
				Amount:    amount,
				Reason:    RefundReasonReturned,
			}); err != nil {
				return err
			}
			if err = o.MarkRefunded(amount, at); err != nil {
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
