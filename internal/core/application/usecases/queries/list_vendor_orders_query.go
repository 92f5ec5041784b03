package queries

import (
	"errors"
	"math"
	"strings"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var ErrListVendorOrdersQueryIsNotConstructed = errors.New(
	"ListVendorOrdersQuery must be created via NewListVendorOrdersQuery constructor",
)

// ListVendorOrdersQuery pages through the orders that contain the actor's
// products. A zero limit means DefaultPageLimit; an empty status lists all.
type ListVendorOrdersQuery struct {
	actor  access.Actor
	status *order.Status
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

func NewListVendorOrdersQuery(actor access.Actor, status string, limit, offset int) (ListVendorOrdersQuery, error) {
	if !actor.IsAuthenticated() {
		return ListVendorOrdersQuery{}, errs.ErrUnauthenticated
	}

	var filter *order.Status
	if status = strings.TrimSpace(status); status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return ListVendorOrdersQuery{}, err
		}
		filter = &parsed
	}

	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 || limit > MaxPageLimit {
		return ListVendorOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageLimit)
	}
	if offset < 0 {
		return ListVendorOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, math.MaxInt)
	}

	return ListVendorOrdersQuery{
		actor:  actor,
		status: filter,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListVendorOrdersQuery) Actor() access.Actor { return q.actor }

// Status is nil when no filter was given.
func (q ListVendorOrdersQuery) Status() *order.Status { return q.status }

func (q ListVendorOrdersQuery) Limit() int { return q.limit }

func (q ListVendorOrdersQuery) Offset() int { return q.offset }

func (q ListVendorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListVendorOrdersQueryIsNotConstructed)
}
