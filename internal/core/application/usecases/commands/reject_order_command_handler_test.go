package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectOrderCommandHandler_Success(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	vendor := newActor(t, access.RoleVendor)
	mine := newProduct(vendor, "Mine", 0, false, false)
	theirs := newProduct(newActor(t, access.RoleVendor), "Theirs", 0, true, true)
	o := orderFor(t, newActor(t, access.RoleCustomer), order.Shipped, line{mine, 2, "4"}, line{theirs, 1, "2"})
	reason := "damaged in transit"

	w.begin(ctx)
	w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	w.products.On("GetForUpdate", ctx, o.ProductIDs()).Return([]*product.Product{mine, theirs}, nil).Once()
	w.products.On("Update", ctx, mine).Return(nil).Once()
	w.orders.On("Update", ctx, o).Return(nil).Once()
	w.expectCommit(ctx)

	cmd, err := commands.NewRejectOrderCommand(o.ID(), vendor, &reason)
	require.NoError(t, err)
	_, err = commands.NewRejectOrderCommandHandler(w.orderFactory(), commands.NoLocking{}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Rejected, o.Status())
	assert.NotNil(t, o.RejectedAt())
	assert.Equal(t, reason, *o.RejectionReason())
	assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	assert.Equal(t, 2, mine.StockQuantity())
	assert.Equal(t, 0, theirs.StockQuantity())
	w.assertExpectations(t)
}

func TestRejectOrderCommandHandler_DisallowedStatuses(t *testing.T) {
	vendor := newActor(t, access.RoleVendor)
	p := newProduct(vendor, "P", 5, true, true)

	for _, status := range []order.Status{order.Delivered, order.Cancelled, order.Rejected, order.ReturnRequested} {
		t.Run(status.String(), func(t *testing.T) {
			ctx := context.Background()
			w := newWorld(t)
			o := orderFor(t, newActor(t, access.RoleCustomer), status, line{p, 1, "1"})

			w.begin(ctx)
			w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			w.products.On("GetForUpdate", ctx, o.ProductIDs()).Return([]*product.Product{p}, nil).Once()

			cmd, _ := commands.NewRejectOrderCommand(o.ID(), vendor, nil)
			_, err := commands.NewRejectOrderCommandHandler(w.orderFactory(), commands.NoLocking{}).Handle(ctx, cmd)

			assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
			assert.Equal(t, 5, p.StockQuantity())
			w.assertNotCommitted(t)
		})
	}
}
