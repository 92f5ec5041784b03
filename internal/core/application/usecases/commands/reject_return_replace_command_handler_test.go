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
	"github.com/stretchr/testify/require"
)

func TestRejectReturnReplace(t *testing.T) {
	tests := []struct {
		name        string
		otherStatus *returns.Status
		want        order.Status
	}{
		{"last pending request reverts the order", nil, order.Delivered},
		{"another pending request keeps the order waiting", ptr(returns.StatusPending), order.ReturnRequested},
		{"rejected sibling does not count", ptr(returns.StatusRejected), order.Delivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			w := newWorld(t)
			vendor := newActor(t, access.RoleVendor)
			a := newProduct(vendor, "A", 1, true, true)
			b := newProduct(vendor, "B", 1, true, true)
			o := orderFor(t, newActor(t, access.RoleCustomer), order.ReturnRequested, line{a, 1, "5"}, line{b, 1, "6"})
			request := pendingRequest(t, o, o.Items()[0], vendor, returns.KindReturn)
			siblings := []*returns.Request{request}
			if tt.otherStatus != nil {
				other := pendingRequest(t, o, o.Items()[1], vendor, returns.KindReturn)
				if *tt.otherStatus == returns.StatusRejected {
					require.NoError(t, other.Reject(o.CreatedAt(), nil))
				}
				siblings = append(siblings, other)
			}
			reason := "worn"

			w.begin(ctx)
			w.requests.On("GetForUpdate", ctx, request.ID()).Return(request, nil).Once()
			w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			w.products.On("Get", ctx, []kernel.UUID{a.ID()}).Return([]*product.Product{a}, nil).Once()
			w.requests.On("ListByOrder", ctx, o.ID()).Return(siblings, nil).Once()
			w.requests.On("Update", ctx, request).Return(nil).Once()
			w.orders.On("Update", ctx, o).Return(nil).Once()
			w.expectCommit(ctx)

			cmd, err := commands.NewRejectReturnReplaceCommand(request.ID(), vendor, &reason)
			require.NoError(t, err)
			rejected, err := commands.NewRejectReturnReplaceCommandHandler(w.factory(), commands.NoLocking{}).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, returns.StatusRejected, rejected.Status())
			assert.Equal(t, reason, *rejected.RejectedReason())
			assert.Equal(t, tt.want, o.Status())
			assert.Equal(t, 1, a.StockQuantity())
			w.assertExpectations(t)
		})
	}
}

func TestRejectReturnReplace_OnlyPending(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	vendor := newActor(t, access.RoleVendor)
	p := newProduct(vendor, "A", 1, true, true)
	o := orderFor(t, newActor(t, access.RoleCustomer), order.ReturnProcessed, line{p, 1, "5"})
	request := pendingRequest(t, o, o.Items()[0], vendor, returns.KindReturn)
	require.NoError(t, request.Approve(o.CreatedAt()))
	require.NoError(t, request.Process(o.CreatedAt()))

	w.begin(ctx)
	w.requests.On("GetForUpdate", ctx, request.ID()).Return(request, nil).Once()
	w.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	w.products.On("Get", ctx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()

	cmd, _ := commands.NewRejectReturnReplaceCommand(request.ID(), vendor, nil)
	_, err := commands.NewRejectReturnReplaceCommandHandler(w.factory(), commands.NoLocking{}).Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
	assert.Equal(t, order.ReturnProcessed, o.Status())
	w.assertNotCommitted(t)
}

func ptr[T any](v T) *T { return &v }
