// Package redis holds the Redis backed OrderLocker.
package redis

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix         = "fulfillment:order-lock:"
	DefaultRetryDelay = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still holds the caller's token,
// so an expired lock re-taken by someone else is left alone.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ ports.OrderLocker = (*OrderLocker)(nil)

// OrderLocker takes a per-order lock with SET NX PX. A held lock is polled
// every retryDelay until wait elapses.
type OrderLocker struct {
	client     goredis.UniversalClient
	ttl        time.Duration
	wait       time.Duration
	retryDelay time.Duration
}

func NewOrderLocker(client goredis.UniversalClient, ttl, wait time.Duration) (*OrderLocker, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("ttl", ttl, time.Millisecond, "unbounded")
	}
	if wait < 0 {
		return nil, errs.NewValueIsOutOfRangeError("wait", wait, 0, "unbounded")
	}
	return &OrderLocker{client: client, ttl: ttl, wait: wait, retryDelay: DefaultRetryDelay}, nil
}

func (l *OrderLocker) Lock(ctx context.Context, orderID kernel.UUID) (ports.UnlockFunc, error) {
	key := keyPrefix + orderID.String()
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if acquired {
			return func(ctx context.Context) error {
				err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
				if errors.Is(err, goredis.Nil) {
					return nil
				}
				return err
			}, nil
		}

		if !time.Now().Before(deadline) {
			return nil, errs.NewResourceIsLockedError("order", orderID.String())
		}

		timer := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
