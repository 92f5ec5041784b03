package commands

import (
	"context"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// NoLocking is the OrderLocker used when no Redis is configured.
type NoLocking struct{}

func (NoLocking) Lock(context.Context, kernel.UUID) (ports.UnlockFunc, error) {
	return func(context.Context) error { return nil }, nil
}

// withLock runs fn while holding the lock on id. Release errors are ignored:
// the lock expires on its own and the transaction already finished.
func withLock(ctx context.Context, locker ports.OrderLocker, id kernel.UUID, fn func() error) error {
	if locker == nil {
		locker = NoLocking{}
	}
	unlock, err := locker.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer func() {
		_ = unlock(context.WithoutCancel(ctx))
	}()
	return fn()
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func requireActor(actor access.Actor) error {
	if !actor.IsAuthenticated() {
		return errs.ErrUnauthenticated
	}
	return nil
}

func indexProducts(products []*product.Product) map[kernel.UUID]*product.Product {
	index := make(map[kernel.UUID]*product.Product, len(products))
	for _, p := range products {
		index[p.ID()] = p
	}
	return index
}

func vendorIDs(products []*product.Product) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.VendorID())
	}
	return ids
}

// restockScope returns the items a vendor-side action puts back on the shelf:
// an admin restores the whole order, a vendor only their own products.
func restockScope(actor access.Actor) services.VendorScope {
	if access.IsAdmin(actor) {
		return services.AllVendors()
	}
	return services.OnlyVendor(actor.ID())
}

func saveProducts(ctx context.Context, repo ports.ProductRepository, products []*product.Product) error {
	for _, p := range products {
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// normalizeReason turns a blank reason into nil so it is stored as NULL.
func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
