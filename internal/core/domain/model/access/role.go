package access

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Role is the closed set of caller roles.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleVendor
	RoleAdmin
)

// Capability is a coarse permission granted by a role.
type Capability int

const (
	// ViewOwnOrders lets a caller read and cancel orders they placed.
	ViewOwnOrders Capability = iota + 1
	// RequestReturns lets a caller open return and replace requests on their orders.
	RequestReturns
	// ManageVendorOrders lets a caller drive orders that contain their products.
	ManageVendorOrders
	// ManageAllOrders lets a caller act on any order regardless of ownership.
	ManageAllOrders
)

var roleNames = map[Role]string{
	RoleCustomer: "customer",
	RoleVendor:   "vendor",
	RoleAdmin:    "admin",
}

var roleCapabilities = map[Role][]Capability{
	RoleCustomer: {ViewOwnOrders, RequestReturns},
	RoleVendor:   {ViewOwnOrders, RequestReturns, ManageVendorOrders},
	RoleAdmin:    {ViewOwnOrders, RequestReturns, ManageVendorOrders, ManageAllOrders},
}

// ParseRole maps a token claim to a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for role, name := range roleNames {
		if name == needle {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

// Covers reports whether r is at least as privileged as other, meaning r holds
// every capability other holds.
func (r Role) Covers(other Role) bool {
	if r.Validate() != nil || other.Validate() != nil {
		return false
	}
	for _, c := range roleCapabilities[other] {
		if !r.Can(c) {
			return false
		}
	}
	return true
}
