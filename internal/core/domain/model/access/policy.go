package access

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Actions named in AccessDeniedError messages.
const (
	ActionViewOrder        = "view order"
	ActionCancelOrder      = "cancel order"
	ActionManageOrder      = "manage order"
	ActionRequestReturn    = "request return or replacement"
	ActionResolveRequest   = "resolve return or replacement request"
	ActionListVendorOrders = "list vendor orders"
)

// IsOwner reports whether the actor placed the order.
func IsOwner(actor Actor, orderUserID kernel.UUID) bool {
	return actor.IsAuthenticated() && actor.id.IsEqual(orderUserID)
}

// IsVendorOf reports whether the actor holds the vendor role and sells at least
// one of the products behind vendorIDs.
func IsVendorOf(actor Actor, vendorIDs []kernel.UUID) bool {
	if !actor.IsAuthenticated() || !actor.role.Can(ManageVendorOrders) {
		return false
	}
	for _, vendorID := range vendorIDs {
		if actor.id.IsEqual(vendorID) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor may act on any order.
func IsAdmin(actor Actor) bool {
	return actor.IsAuthenticated() && actor.role.Can(ManageAllOrders)
}

// AuthorizeViewOrder allows the owner and admins.
func AuthorizeViewOrder(actor Actor, orderUserID kernel.UUID) error {
	if !actor.IsAuthenticated() {
		return errs.ErrUnauthenticated
	}
	if IsOwner(actor, orderUserID) || IsAdmin(actor) {
		return nil
	}
	return errs.NewAccessDeniedError(ActionViewOrder)
}

// AuthorizeCancelOrder allows the owner only. Admins and vendors cancel through
// the vendor flow, which records a reason.
func AuthorizeCancelOrder(actor Actor, orderUserID kernel.UUID) error {
	if !actor.IsAuthenticated() {
		return errs.ErrUnauthenticated
	}
	if IsOwner(actor, orderUserID) && actor.role.Can(ViewOwnOrders) {
		return nil
	}
	return errs.NewAccessDeniedError(ActionCancelOrder)
}

// AuthorizeManageOrder covers vendor cancel, confirm, reject and status updates.
// vendorIDs are the vendors of the order's items.
func AuthorizeManageOrder(actor Actor, vendorIDs []kernel.UUID) error {
	if !actor.IsAuthenticated() {
		return errs.ErrUnauthenticated
	}
	if IsAdmin(actor) || IsVendorOf(actor, vendorIDs) {
		return nil
	}
	return errs.NewAccessDeniedError(ActionManageOrder)
}

// AuthorizeRequestReturn allows the order owner to open a return or replace request.
func AuthorizeRequestReturn(actor Actor, orderUserID kernel.UUID) error {
	if !actor.IsAuthenticated() {
		return errs.ErrUnauthenticated
	}
	if IsOwner(actor, orderUserID) && actor.role.Can(RequestReturns) {
		return nil
	}
	return errs.NewAccessDeniedError(ActionRequestReturn)
}

// AuthorizeResolveRequest allows the vendor of the requested product and admins
// to approve or reject a request.
func AuthorizeResolveRequest(actor Actor, productVendorID kernel.UUID) error {
	if !actor.IsAuthenticated() {
		return errs.ErrUnauthenticated
	}
	if IsAdmin(actor) || IsVendorOf(actor, []kernel.UUID{productVendorID}) {
		return nil
	}
	return errs.NewAccessDeniedError(ActionResolveRequest)
}

// AuthorizeListVendorOrders allows vendors (scoped to their products) and admins.
func AuthorizeListVendorOrders(actor Actor) error {
	if !actor.IsAuthenticated() {
		return errs.ErrUnauthenticated
	}
	if actor.role.Can(ManageVendorOrders) {
		return nil
	}
	return errs.NewAccessDeniedError(ActionListVendorOrders)
}
