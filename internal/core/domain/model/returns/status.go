package returns

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the state of a single request.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusApproved
	StatusRejected
	StatusProcessed
)

var statusNames = map[Status]string{
	StatusPending:   "pending",
	StatusApproved:  "approved",
	StatusRejected:  "rejected",
	StatusProcessed: "processed",
}

//nolint:exhaustive // Rejected and Processed are final
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusProcessed},
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid request status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid request status", s))
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

// IsOpen is true while the request still blocks a duplicate of the same kind.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusApproved
}

// OpenStatuses are the statuses covered by the one-open-request-per-item rule.
func OpenStatuses() []Status {
	return []Status{StatusPending, StatusApproved}
}

// RefundStatus tracks the refund of a return. Replace requests carry RefundNone.
type RefundStatus int

const (
	RefundNone RefundStatus = iota
	RefundPending
	RefundPaid
)

var refundStatusNames = map[RefundStatus]string{
	RefundPending: "pending",
	RefundPaid:    "paid",
}

func ParseRefundStatus(s string) (RefundStatus, error) {
	if s == "" {
		return RefundNone, nil
	}
	for status, name := range refundStatusNames {
		if name == s {
			return status, nil
		}
	}
	return RefundNone, errs.NewValueIsInvalidErrorWithCause("returnPaymentStatus", fmt.Errorf("%q is not a valid refund status", s))
}

// String returns "" for RefundNone so it persists as NULL-equivalent.
func (r RefundStatus) String() string {
	return refundStatusNames[r]
}
