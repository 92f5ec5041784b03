package returns

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/ddd"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrRequestIsNotConstructed is returned by Validate for a zero Request.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")

// Request is a return or replace request on one order item.
type Request struct {
	ddd.AggregateRoot

	id          kernel.UUID
	orderID     kernel.UUID
	orderItemID kernel.UUID
	userID      kernel.UUID
	vendorID    kernel.UUID
	kind        Kind
	status      Status
	reason      *string

	requestedAt    time.Time
	approvedAt     *time.Time
	rejectedAt     *time.Time
	processedAt    *time.Time
	rejectedReason *string

	returnAmount *kernel.Money
	refundStatus RefundStatus

	guard guard.ConstructorGuard
}

// NewRequest opens a pending request. For a return, itemTotal becomes the
// refund amount; it is ignored for a replace.
func NewRequest(
	id, orderID, orderItemID, userID, vendorID kernel.UUID,
	kind Kind,
	reason *string,
	itemTotal kernel.Money,
	now time.Time,
) (*Request, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		orderItemID.Validate(),
		userID.Validate(),
		vendorID.Validate(),
		kind.Validate(),
	); err != nil {
		return nil, err
	}

	r := &Request{
		id:          id,
		orderID:     orderID,
		orderItemID: orderItemID,
		userID:      userID,
		vendorID:    vendorID,
		kind:        kind,
		status:      StatusPending,
		reason:      reason,
		requestedAt: now,
		guard:       guard.NewConstructorGuard(),
	}

	if kind == KindReturn {
		if err := itemTotal.Validate(); err != nil {
			return nil, err
		}
		amount := itemTotal
		r.returnAmount = &amount
		r.refundStatus = RefundPending
	}

	r.RaiseDomainEvent(RequestOpened{
		RequestID:   id.Bytes(),
		OrderID:     orderID.Bytes(),
		OrderItemID: orderItemID.Bytes(),
		VendorID:    vendorID.Bytes(),
		Kind:        kind.String(),
		At:          now,
	})
	return r, nil
}

// State is the persisted form of a Request.
type State struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	OrderItemID    kernel.UUID
	UserID         kernel.UUID
	VendorID       kernel.UUID
	Kind           Kind
	Status         Status
	Reason         *string
	RequestedAt    time.Time
	ApprovedAt     *time.Time
	RejectedAt     *time.Time
	ProcessedAt    *time.Time
	RejectedReason *string
	ReturnAmount   *kernel.Money
	RefundStatus   RefundStatus
}

// RestoreRequest rebuilds a request loaded from storage without raising events.
func RestoreRequest(s State) (*Request, error) {
	if err := errors.Join(s.ID.Validate(), s.Kind.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Request{
		id:             s.ID,
		orderID:        s.OrderID,
		orderItemID:    s.OrderItemID,
		userID:         s.UserID,
		vendorID:       s.VendorID,
		kind:           s.Kind,
		status:         s.Status,
		reason:         s.Reason,
		requestedAt:    s.RequestedAt,
		approvedAt:     s.ApprovedAt,
		rejectedAt:     s.RejectedAt,
		processedAt:    s.ProcessedAt,
		rejectedReason: s.RejectedReason,
		returnAmount:   s.ReturnAmount,
		refundStatus:   s.RefundStatus,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (r *Request) ID() kernel.UUID { return r.id }
func (r *Request) OrderID() kernel.UUID { return r.orderID }
func (r *Request) OrderItemID() kernel.UUID { return r.orderItemID }
func (r *Request) UserID() kernel.UUID { return r.userID }
func (r *Request) VendorID() kernel.UUID { return r.vendorID }
func (r *Request) Kind() Kind { return r.kind }
func (r *Request) Status() Status { return r.status }
func (r *Request) Reason() *string { return r.reason }
func (r *Request) RequestedAt() time.Time { return r.requestedAt }
func (r *Request) ApprovedAt() *time.Time { return r.approvedAt }
func (r *Request) RejectedAt() *time.Time { return r.rejectedAt }
func (r *Request) ProcessedAt() *time.Time { return r.processedAt }
func (r *Request) RejectedReason() *string { return r.rejectedReason }
func (r *Request) ReturnAmount() *kernel.Money { return r.returnAmount }
func (r *Request) RefundStatus() RefundStatus { return r.refundStatus }

// IsOpen is true while the request is pending or approved.
func (r *Request) IsOpen() bool {
	return r.status.IsOpen()
}

// Approve moves a pending request to Approved.
func (r *Request) Approve(now time.Time) error {
	if err := r.moveTo(StatusApproved, now); err != nil {
		return err
	}
	r.approvedAt = &now
	return nil
}

// Process completes an approved request. A processed return is refunded.
func (r *Request) Process(now time.Time) error {
	if err := r.moveTo(StatusProcessed, now); err != nil {
		return err
	}
	r.processedAt = &now
	if r.kind == KindReturn {
		r.refundStatus = RefundPaid
	}
	return nil
}

// Reject closes a pending request.
func (r *Request) Reject(now time.Time, reason *string) error {
	if err := r.moveTo(StatusRejected, now); err != nil {
		return err
	}
	r.rejectedAt = &now
	r.rejectedReason = reason
	return nil
}

// Validate ensures the request was built through a constructor.
func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

func (r *Request) moveTo(to Status, now time.Time) error {
	if !r.status.CanTransitionTo(to) {
		return errs.NewTransitionIsInvalidError(
			fmt.Sprintf("%s request", r.kind),
			r.status.String(),
			to.String(),
		)
	}
	from := r.status
	r.status = to
	r.RaiseDomainEvent(RequestStatusChanged{
		RequestID: r.id.Bytes(),
		OrderID:   r.orderID.Bytes(),
		Kind:      r.kind.String(),
		From:      from.String(),
		To:        to.String(),
		At:        now,
	})
	return nil
}
