package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is one order line. Quantity and TotalPrice are fixed at checkout.
type Item struct {
	id         kernel.UUID
	productID  kernel.UUID
	quantity   int
	totalPrice kernel.Money
}

// NewItem validates and builds an order line.
func NewItem(id, productID kernel.UUID, quantity int, totalPrice kernel.Money) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		validateQuantity(quantity),
		totalPrice.Validate(),
	); err != nil {
		return nil, err
	}
	return &Item{id: id, productID: productID, quantity: quantity, totalPrice: totalPrice}, nil
}

func (i *Item) ID() kernel.UUID { return i.id }

func (i *Item) ProductID() kernel.UUID { return i.productID }

func (i *Item) Quantity() int { return i.quantity }

func (i *Item) TotalPrice() kernel.Money { return i.totalPrice }

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
