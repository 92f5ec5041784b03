// Package orderrepo persists the order aggregate and its items.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Statuses are stored by name so SQL filters stay readable.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;index"`
	ShippingAddressID    uuid.UUID `gorm:"type:uuid;not null"`
	Status               string    `gorm:"type:varchar(32);not null;index"`
	PaymentStatus        string    `gorm:"type:varchar(16);not null"`
	ConfirmedAt          *time.Time
	DispatchedAt         *time.Time
	ShippedAt            *time.Time
	DeliveredAt          *time.Time
	CancelledAt          *time.Time
	RejectedAt           *time.Time
	CancellationReason   *string `gorm:"type:text"`
	RejectionReason      *string `gorm:"type:text"`
	ExpectedDeliveryDate *time.Time
	CreatedAt            time.Time      `gorm:"not null;index"`
	Items                []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is an order line. Lines never change after checkout.
type OrderItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	Quantity   int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:         item.ID().Bytes(),
			OrderID:    orderID,
			ProductID:  item.ProductID().Bytes(),
			Position:   i,
			Quantity:   item.Quantity(),
			TotalPrice: item.TotalPrice().Amount(),
		})
	}

	return OrderDTO{
		ID:                   orderID,
		UserID:               o.UserID().Bytes(),
		ShippingAddressID:    o.ShippingAddressID().Bytes(),
		Status:               o.Status().String(),
		PaymentStatus:        o.PaymentStatus().String(),
		ConfirmedAt:          o.ConfirmedAt(),
		DispatchedAt:         o.DispatchedAt(),
		ShippedAt:            o.ShippedAt(),
		DeliveredAt:          o.DeliveredAt(),
		CancelledAt:          o.CancelledAt(),
		RejectedAt:           o.RejectedAt(),
		CancellationReason:   o.CancellationReason(),
		RejectionReason:      o.RejectionReason(),
		ExpectedDeliveryDate: o.ExpectedDeliveryDate(),
		CreatedAt:            o.CreatedAt(),
		Items:                items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.ShippingAddressID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.State{
		ID:                   id,
		UserID:               userID,
		ShippingAddressID:    addressID,
		Status:               status,
		PaymentStatus:        paymentStatus,
		Items:                items,
		ConfirmedAt:          dto.ConfirmedAt,
		DispatchedAt:         dto.DispatchedAt,
		ShippedAt:            dto.ShippedAt,
		DeliveredAt:          dto.DeliveredAt,
		CancelledAt:          dto.CancelledAt,
		RejectedAt:           dto.RejectedAt,
		CancellationReason:   dto.CancellationReason,
		RejectionReason:      dto.RejectionReason,
		ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		CreatedAt:            dto.CreatedAt,
	})
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}
	return order.NewItem(id, productID, dto.Quantity, total)
}
