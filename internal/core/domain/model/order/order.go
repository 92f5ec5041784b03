package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/ddd"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DeliveryWindow is added to the confirmation time to get the expected delivery date.
const DeliveryWindow = 5 * 24 * time.Hour

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoItems is returned by NewOrder for an empty basket.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root of the fulfillment lifecycle.
//
// Invariants:
//   - status only changes along the transition table (see Status)
//   - cancelledAt is set iff status is Cancelled, rejectedAt iff status is Rejected
//   - paymentStatus becomes Paid only through MarkRefunded, after a cancellation
//     or a processed return
//   - items are fixed at checkout
//
// Every status change raises a StatusChanged event that the unit of work
// forwards to the outbox.
type Order struct {
	ddd.AggregateRoot

	id                kernel.UUID
	userID            kernel.UUID
	shippingAddressID kernel.UUID
	status            Status
	paymentStatus     PaymentStatus
	items             []*Item

	confirmedAt  *time.Time
	dispatchedAt *time.Time
	shippedAt    *time.Time
	deliveredAt  *time.Time
	cancelledAt  *time.Time
	rejectedAt   *time.Time

	cancellationReason   *string
	rejectionReason      *string
	expectedDeliveryDate *time.Time
	createdAt            time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order. Checkout lives outside this service, so
// NewOrder is used by seeding and tests.
func NewOrder(id, userID, shippingAddressID kernel.UUID, items []*Item, now time.Time) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		shippingAddressID.Validate(),
		validateItems(items),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                id,
		userID:            userID,
		shippingAddressID: shippingAddressID,
		status:            Pending,
		paymentStatus:     PaymentPending,
		items:             items,
		createdAt:         now,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// State is the persisted form of an Order.
type State struct {
	ID                   kernel.UUID
	UserID               kernel.UUID
	ShippingAddressID    kernel.UUID
	Status               Status
	PaymentStatus        PaymentStatus
	Items                []*Item
	ConfirmedAt          *time.Time
	DispatchedAt         *time.Time
	ShippedAt            *time.Time
	DeliveredAt          *time.Time
	CancelledAt          *time.Time
	RejectedAt           *time.Time
	CancellationReason   *string
	RejectionReason      *string
	ExpectedDeliveryDate *time.Time
	CreatedAt            time.Time
}

// RestoreOrder rebuilds an order loaded from storage. No events are raised.
func RestoreOrder(s State) (*Order, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Order{
		id:                   s.ID,
		userID:               s.UserID,
		shippingAddressID:    s.ShippingAddressID,
		status:               s.Status,
		paymentStatus:        s.PaymentStatus,
		items:                s.Items,
		confirmedAt:          s.ConfirmedAt,
		dispatchedAt:         s.DispatchedAt,
		shippedAt:            s.ShippedAt,
		deliveredAt:          s.DeliveredAt,
		cancelledAt:          s.CancelledAt,
		rejectedAt:           s.RejectedAt,
		cancellationReason:   s.CancellationReason,
		rejectionReason:      s.RejectionReason,
		expectedDeliveryDate: s.ExpectedDeliveryDate,
		createdAt:            s.CreatedAt,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) UserID() kernel.UUID { return o.userID }
func (o *Order) ShippingAddressID() kernel.UUID { return o.shippingAddressID }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }
func (o *Order) DispatchedAt() *time.Time { return o.dispatchedAt }
func (o *Order) ShippedAt() *time.Time { return o.shippedAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }
func (o *Order) RejectedAt() *time.Time { return o.rejectedAt }
func (o *Order) CancellationReason() *string { return o.cancellationReason }
func (o *Order) RejectionReason() *string { return o.rejectionReason }
func (o *Order) ExpectedDeliveryDate() *time.Time { return o.expectedDeliveryDate }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Items returns a copy of the order lines.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// Item looks up a line by id.
func (o *Order) Item(itemID kernel.UUID) (*Item, bool) {
	for _, item := range o.items {
		if item.id.IsEqual(itemID) {
			return item, true
		}
	}
	return nil, false
}

// ProductIDs returns the distinct products of the order in line order.
func (o *Order) ProductIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(o.items))
	ids := make([]kernel.UUID, 0, len(o.items))
	for _, item := range o.items {
		if _, ok := seen[item.productID]; ok {
			continue
		}
		seen[item.productID] = struct{}{}
		ids = append(ids, item.productID)
	}
	return ids
}

// Total sums the line totals.
func (o *Order) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.totalPrice)
	}
	return total
}

// Confirm accepts a pending order and schedules its delivery.
func (o *Order) Confirm(now time.Time) error {
	if o.status != Pending {
		return errs.NewTransitionIsInvalidError("order", o.status.String(), Confirmed.String())
	}
	if err := o.moveTo(Confirmed, now, nil); err != nil {
		return err
	}
	expected := now.Add(DeliveryWindow)
	o.confirmedAt = &now
	o.expectedDeliveryDate = &expected
	return nil
}

// Advance performs one forward fulfillment step: Confirmed -> Dispatched ->
// Shipped -> Delivered. Confirmation goes through Confirm only.
func (o *Order) Advance(to Status, now time.Time) error {
	switch to {
	case Dispatched, Shipped, Delivered:
	default:
		return errs.NewTransitionIsInvalidError("order", o.status.String(), to.String())
	}

	if err := o.moveTo(to, now, nil); err != nil {
		return err
	}

	//nolint:exhaustive // guarded by the switch above
	switch to {
	case Dispatched:
		o.dispatchedAt = &now
	case Shipped:
		o.shippedAt = &now
	case Delivered:
		o.deliveredAt = &now
	}
	return nil
}

// ValidateCancel reports whether Cancel would succeed, without side effects.
func (o *Order) ValidateCancel() error {
	return o.status.validateTransition(Cancelled)
}

// ValidateReject reports whether Reject would succeed, without side effects.
func (o *Order) ValidateReject() error {
	return o.status.validateTransition(Rejected)
}

// Cancel stops an order that has not shipped yet.
func (o *Order) Cancel(now time.Time, reason *string) error {
	if err := o.moveTo(Cancelled, now, reason); err != nil {
		return err
	}
	o.cancelledAt = &now
	o.cancellationReason = reason
	return nil
}

// Reject declines an order before delivery.
func (o *Order) Reject(now time.Time, reason *string) error {
	if err := o.moveTo(Rejected, now, reason); err != nil {
		return err
	}
	o.rejectedAt = &now
	o.rejectionReason = reason
	return nil
}

// MarkRefunded sets the refund marker after a cancellation or a processed return.
func (o *Order) MarkRefunded(amount kernel.Money, now time.Time) error {
	if o.status != Cancelled && o.status != ReturnProcessed {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("order in status %s cannot be refunded", o.status),
		)
	}
	o.paymentStatus = PaymentPaid
	o.RaiseDomainEvent(Refunded{
		OrderID: o.id.Bytes(),
		UserID:  o.userID.Bytes(),
		Amount:  amount.String(),
		At:      now,
	})
	return nil
}

// OpenReturnReplace moves a delivered order to {kind}_requested. An order that
// already waits on a request keeps its status.
func (o *Order) OpenReturnReplace(kind returns.Kind, now time.Time) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if o.status.HasOpenReturnReplace() {
		return nil
	}
	return o.moveTo(requestedStatus(kind), now, nil)
}

// CompleteReturnReplace moves the order to {kind}_processed. Completing a
// second request of the kind the order is already processed for is a no-op.
func (o *Order) CompleteReturnReplace(kind returns.Kind, now time.Time) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	target := processedStatus(kind)
	if o.status == target {
		return nil
	}
	return o.moveTo(target, now, nil)
}

// RevertToDelivered drops a *_requested order back to Delivered once its last
// pending request was rejected. The prior status is not tracked, so Delivered
// is assumed.
func (o *Order) RevertToDelivered(now time.Time) error {
	if !o.status.IsAwaitingDecision() {
		return errs.NewTransitionIsInvalidError("order", o.status.String(), Delivered.String())
	}
	return o.moveTo(Delivered, now, nil)
}

func (o *Order) moveTo(to Status, now time.Time, reason *string) error {
	if err := o.status.validateTransition(to); err != nil {
		return err
	}
	from := o.status
	o.status = to
	o.RaiseDomainEvent(StatusChanged{
		OrderID: o.id.Bytes(),
		UserID:  o.userID.Bytes(),
		From:    from.String(),
		To:      to.String(),
		Reason:  reason,
		At:      now,
	})
	return nil
}

func requestedStatus(kind returns.Kind) Status {
	if kind == returns.KindReplace {
		return ReplaceRequested
	}
	return ReturnRequested
}

func processedStatus(kind returns.Kind) Status {
	if kind == returns.KindReplace {
		return ReplaceProcessed
	}
	return ReturnProcessed
}

func validateItems(items []*Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if item == nil {
			return errs.NewValueIsRequiredError("item")
		}
	}
	return nil
}
