package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
)

// ReturnRequestRepository persists return and replace requests.
type ReturnRequestRepository interface {
	// Add inserts a new request. A second open request of the same kind for the
	// same order item violates the store's unique index and is reported as a
	// PolicyViolationError.
	Add(ctx context.Context, aggregate *returns.Request) error

	Update(ctx context.Context, aggregate *returns.Request) error

	Get(ctx context.Context, id kernel.UUID) (*returns.Request, error)

	// GetForUpdate loads a request and locks its row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*returns.Request, error)

	// ListByOrder returns every request of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Request, error)

	// ExistsOpen reports whether a pending or approved request of kind exists
	// for the order item.
	ExistsOpen(ctx context.Context, orderItemID kernel.UUID, kind returns.Kind) (bool, error)
}
