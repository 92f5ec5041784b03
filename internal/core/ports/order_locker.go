package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// UnlockFunc releases a lock taken by OrderLocker.
type UnlockFunc func(ctx context.Context) error

// OrderLocker serializes mutations of one order across service instances
// before a transaction is opened. Row locks inside the transaction remain the
// source of truth; the lock only keeps competing requests from queueing on them.
type OrderLocker interface {
	Lock(ctx context.Context, orderID kernel.UUID) (UnlockFunc, error)
}
