package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"
)

// Rules reported in PolicyViolationError.
const (
	RuleItemsNotReturnable    = "every item must be returnable to cancel the order"
	RuleProductNotReturnable  = "product does not allow returns"
	RuleProductNotReplaceable = "product does not allow replacement"
	RuleDuplicateRequest      = "an open request of this kind already exists for the item"
)

// ReturnPolicy reads the return flags of the products at decision time.
type ReturnPolicy struct{}

func NewReturnPolicy() ReturnPolicy {
	return ReturnPolicy{}
}

// CheckCancellable fails with an itemized PolicyViolation when any item's
// product is not returnable. All items are checked, whoever cancels.
func (ReturnPolicy) CheckCancellable(items []*order.Item, products map[kernel.UUID]*product.Product) error {
	var violations []string
	for _, item := range items {
		p, ok := products[item.ProductID()]
		if !ok {
			return errs.NewObjectNotFoundError("product", item.ProductID().String())
		}
		if !p.IsReturnable() {
			violations = append(violations, fmt.Sprintf("item %s: %s is not returnable", item.ID(), p.Name()))
		}
	}
	if len(violations) > 0 {
		return errs.NewPolicyViolationError(RuleItemsNotReturnable, violations...)
	}
	return nil
}

// CheckRequestAllowed fails when the product does not allow the request kind.
func (ReturnPolicy) CheckRequestAllowed(p *product.Product, kind returns.Kind) error {
	switch kind {
	case returns.KindReturn:
		if !p.IsReturnable() {
			return errs.NewPolicyViolationError(RuleProductNotReturnable, p.Name())
		}
	case returns.KindReplace:
		if !p.IsReplaceable() {
			return errs.NewPolicyViolationError(RuleProductNotReplaceable, p.Name())
		}
	default:
		return kind.Validate()
	}
	return nil
}
