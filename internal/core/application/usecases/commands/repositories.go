// Package commands contains the operations that change order state.
// Every handler follows the same shape: validate the command, take the order
// lock, open a unit of work, load and lock the aggregates, authorize, mutate,
// persist and commit. Any error before Commit rolls the whole transaction back.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces scoped to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	ReturnRequestRepoFactory interface {
		ReturnRequestRepository() ports.ReturnRequestRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW covers order transitions and the stock they restore.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW covers the return/replace workflow: requests, their order and stock.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   request, err := uow.ReturnRequestRepository().GetForUpdate(ctx, id)
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, request.OrderID())
	//   // ... mutate and update
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		ReturnRequestRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// OutboxUoW is used by the relay only.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
