package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The full graph lives in one
// table, transitions, so every allowed move is visible in a single place.
//
// Forward fulfillment:
//
//	Pending ──> Confirmed ──> Dispatched ──> Shipped ──> Delivered
//	   │            │             │             │
//	   └────────────┴─────────────┴──> Cancelled (not from Shipped)
//	                                    Rejected
//
// After delivery an order moves through the return/replace states and may
// fall back to Delivered when its only open request is rejected.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Dispatched
	Shipped
	Delivered
	Cancelled
	Rejected
	ReturnRequested
	ReturnApproved
	ReturnProcessed
	ReplaceRequested
	ReplaceApproved
	ReplaceProcessed
)

var statusNames = map[Status]string{
	Pending:          "pending",
	Confirmed:        "confirmed",
	Dispatched:       "dispatched",
	Shipped:          "shipped",
	Delivered:        "delivered",
	Cancelled:        "cancelled",
	Rejected:         "rejected",
	ReturnRequested:  "return_requested",
	ReturnApproved:   "return_approved",
	ReturnProcessed:  "return_processed",
	ReplaceRequested: "replace_requested",
	ReplaceApproved:  "replace_approved",
	ReplaceProcessed: "replace_processed",
}

//nolint:exhaustive // Cancelled and Rejected have no outgoing edges
var transitions = map[Status][]Status{
	Pending:          {Confirmed, Cancelled, Rejected},
	Confirmed:        {Dispatched, Cancelled, Rejected},
	Dispatched:       {Shipped, Cancelled, Rejected},
	Shipped:          {Delivered, Rejected},
	Delivered:        {ReturnRequested, ReplaceRequested},
	ReturnRequested:  {ReturnApproved, ReturnProcessed, ReplaceProcessed, Delivered},
	ReplaceRequested: {ReplaceApproved, ReplaceProcessed, ReturnProcessed, Delivered},
	ReturnApproved:   {ReturnProcessed, ReplaceProcessed},
	ReplaceApproved:  {ReplaceProcessed, ReturnProcessed},
	ReturnProcessed:  {ReplaceRequested, ReplaceProcessed},
	ReplaceProcessed: {ReturnRequested, ReturnProcessed},
}

// AllStatuses lists every valid status in declaration order.
func AllStatuses() []Status {
	all := make([]Status, 0, len(statusNames))
	for s := Pending; s <= ReplaceProcessed; s++ {
		all = append(all, s)
	}
	return all
}

// ParseStatus converts the persisted/wire form ("return_requested") to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Validate rejects Unknown and out-of-range values, e.g. from a corrupt row.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// CanTransitionTo reports whether the table holds the edge s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the outgoing edges of s.
func (s Status) AllowedTransitions() []Status {
	next := make([]Status, len(transitions[s]))
	copy(next, transitions[s])
	return next
}

// IsTerminal reports whether s has no outgoing edges.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsPostDelivery reports whether the order has been handed to the customer.
func (s Status) IsPostDelivery() bool {
	switch s {
	case Delivered, ReturnRequested, ReturnApproved, ReturnProcessed,
		ReplaceRequested, ReplaceApproved, ReplaceProcessed:
		return true
	default:
		return false
	}
}

// HasOpenReturnReplace reports whether s signals a request still awaiting a decision.
func (s Status) HasOpenReturnReplace() bool {
	switch s {
	case ReturnRequested, ReturnApproved, ReplaceRequested, ReplaceApproved:
		return true
	default:
		return false
	}
}

// IsAwaitingDecision is true for the two *_requested states, the only ones a
// rejected request may revert to Delivered.
func (s Status) IsAwaitingDecision() bool {
	return s == ReturnRequested || s == ReplaceRequested
}

func (s Status) validateTransition(to Status) error {
	if !s.CanTransitionTo(to) {
		return errs.NewTransitionIsInvalidError("order", s.String(), to.String())
	}
	return nil
}

// PaymentStatus tracks the payment side of an order. Paid doubles as the refund
// marker once an order is cancelled or a return is processed.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending: "pending",
	PaymentPaid:    "paid",
	PaymentFailed:  "failed",
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusNames {
		if name == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a valid payment status", s))
}

func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "unknown"
}
