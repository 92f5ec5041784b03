package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateReturnRequest_Success(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	owner := newActor(t, access.RoleCustomer)
	vendor := newActor(t, access.RoleVendor)
	kettle := newProduct(vendor, "Kettle", 7, true, false)
	o := orderFor(t, owner, order.Delivered, line{kettle, 2, "59.90"})
	item := o.Items()[0]
	reason := "leaks"

	w.begin(ctx)
	w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	w.products.On("Get", ctx, []kernel.UUID{kettle.ID()}).Return([]*product.Product{kettle}, nil).Once()
	w.requests.On("ExistsOpen", ctx, item.ID(), returns.KindReturn).Return(false, nil).Once()
	w.requests.On("Add", ctx, mock.AnythingOfType("*returns.Request")).Return(nil).Once()
	w.orders.On("Update", ctx, o).Return(nil).Once()
	w.expectCommit(ctx)

	cmd, err := commands.NewCreateReturnRequestCommand(o.ID(), item.ID(), owner, &reason)
	require.NoError(t, err)
	request, err := commands.NewCreateReturnReplaceCommandHandler(w.factory(), commands.NoLocking{}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, returns.KindReturn, request.Kind())
	assert.Equal(t, returns.StatusPending, request.Status())
	assert.Equal(t, returns.RefundPending, request.RefundStatus())
	assert.True(t, vendor.ID().IsEqual(request.VendorID()))
	assert.Equal(t, "59.90", request.ReturnAmount().String())
	assert.Equal(t, reason, *request.Reason())
	assert.Equal(t, order.ReturnRequested, o.Status())
	assert.Equal(t, 7, kettle.StockQuantity())
	w.assertExpectations(t)
}

func TestCreateReplaceRequest_WhileReturnIsPending(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	owner := newActor(t, access.RoleCustomer)
	p := newProduct(newActor(t, access.RoleVendor), "Chair", 1, true, true)
	o := orderFor(t, owner, order.ReturnRequested, line{p, 1, "80"})
	item := o.Items()[0]

	w.begin(ctx)
	w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	w.products.On("Get", ctx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()
	w.requests.On("ExistsOpen", ctx, item.ID(), returns.KindReplace).Return(false, nil).Once()
	w.requests.On("Add", ctx, mock.AnythingOfType("*returns.Request")).Return(nil).Once()
	w.orders.On("Update", ctx, o).Return(nil).Once()
	w.expectCommit(ctx)

	cmd, _ := commands.NewCreateReplaceRequestCommand(o.ID(), item.ID(), owner, nil)
	request, err := commands.NewCreateReturnReplaceCommandHandler(w.factory(), commands.NoLocking{}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, returns.KindReplace, request.Kind())
	assert.Nil(t, request.ReturnAmount())
	assert.Equal(t, returns.RefundNone, request.RefundStatus())
	assert.Equal(t, order.ReturnRequested, o.Status())
	w.assertExpectations(t)
}

func TestCreateReturnReplace_Rejections(t *testing.T) {
	owner := newActor(t, access.RoleCustomer)
	vendor := newActor(t, access.RoleVendor)
	returnable := newProduct(vendor, "Lamp", 3, true, false)

	t.Run("duplicate open request", func(t *testing.T) {
		ctx := context.Background()
		w := newWorld(t)
		o := orderFor(t, owner, order.ReturnRequested, line{returnable, 1, "10"})
		item := o.Items()[0]

		w.begin(ctx)
		w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		w.products.On("Get", ctx, []kernel.UUID{returnable.ID()}).Return([]*product.Product{returnable}, nil).Once()
		w.requests.On("ExistsOpen", ctx, item.ID(), returns.KindReturn).Return(true, nil).Once()

		cmd, _ := commands.NewCreateReturnRequestCommand(o.ID(), item.ID(), owner, nil)
		_, err := commands.NewCreateReturnReplaceCommandHandler(w.factory(), commands.NoLocking{}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrPolicyViolation)
		w.requests.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		w.assertNotCommitted(t)
	})

	t.Run("product not replaceable", func(t *testing.T) {
		ctx := context.Background()
		w := newWorld(t)
		o := orderFor(t, owner, order.Delivered, line{returnable, 1, "10"})
		item := o.Items()[0]

		w.begin(ctx)
		w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		w.products.On("Get", ctx, []kernel.UUID{returnable.ID()}).Return([]*product.Product{returnable}, nil).Once()

		cmd, _ := commands.NewCreateReplaceRequestCommand(o.ID(), item.ID(), owner, nil)
		_, err := commands.NewCreateReturnReplaceCommandHandler(w.factory(), commands.NoLocking{}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrPolicyViolation)
		assert.Equal(t, order.Delivered, o.Status())
		w.assertNotCommitted(t)
	})

	for _, status := range []order.Status{order.Shipped, order.Cancelled, order.ReturnProcessed} {
		t.Run("order "+status.String(), func(t *testing.T) {
			ctx := context.Background()
			w := newWorld(t)
			o := orderFor(t, owner, status, line{returnable, 1, "10"})
			item := o.Items()[0]

			w.begin(ctx)
			w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			w.products.On("Get", ctx, []kernel.UUID{returnable.ID()}).Return([]*product.Product{returnable}, nil).Once()
			w.requests.On("ExistsOpen", ctx, item.ID(), returns.KindReturn).Return(false, nil).Maybe()

			cmd, _ := commands.NewCreateReturnRequestCommand(o.ID(), item.ID(), owner, nil)
			_, err := commands.NewCreateReturnReplaceCommandHandler(w.factory(), commands.NoLocking{}).Handle(ctx, cmd)

			assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
			assert.Equal(t, status, o.Status())
			w.assertNotCommitted(t)
		})
	}

	t.Run("not the owner", func(t *testing.T) {
		ctx := context.Background()
		w := newWorld(t)
		o := orderFor(t, owner, order.Delivered, line{returnable, 1, "10"})

		w.begin(ctx)
		w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		cmd, _ := commands.NewCreateReturnRequestCommand(o.ID(), o.Items()[0].ID(), newActor(t, access.RoleCustomer), nil)
		_, err := commands.NewCreateReturnReplaceCommandHandler(w.factory(), commands.NoLocking{}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrAccessDenied)
		w.assertNotCommitted(t)
	})

	t.Run("unknown item", func(t *testing.T) {
		ctx := context.Background()
		w := newWorld(t)
		o := orderFor(t, owner, order.Delivered, line{returnable, 1, "10"})

		w.begin(ctx)
		w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		cmd, _ := commands.NewCreateReturnRequestCommand(o.ID(), kernel.NewUUID(), owner, nil)
		_, err := commands.NewCreateReturnReplaceCommandHandler(w.factory(), commands.NoLocking{}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		w.assertNotCommitted(t)
	})
}
